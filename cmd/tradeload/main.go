package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/tradelib/cmd/tradeload/internal/parse"
	"github.com/meenmo/tradelib/cmd/tradeload/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 on success, 1 when trades were rejected or a file could not
// be read, and 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := &cobra.Command{
		Use:           "tradeload",
		Short:         "Decode trade CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(parse.Command(), types.Command())

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, parse.ErrRejected):
		return 1
	case errors.Is(err, parse.ErrLoad):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n\n", err)
		fmt.Fprint(stderr, root.UsageString())
		return 2
	}
}
