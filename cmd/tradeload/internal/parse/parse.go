package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/config"
	"github.com/meenmo/tradelib/loader"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/credit"
	"github.com/meenmo/tradelib/product/swap"
)

var (
	// ErrRejected is returned when at least one trade failed to decode.
	ErrRejected = errors.New("trades rejected")
	// ErrLoad is returned when configuration or a file cannot be read.
	ErrLoad = errors.New("load failed")
)

type options struct {
	configPath string
	workers    int
	calendar   string
	output     string
}

// Summary is the printed form of a decoded trade.
type Summary struct {
	File       string   `json:"file"`
	ID         string   `json:"id,omitempty"`
	Type       string   `json:"type"`
	TradeDate  string   `json:"trade_date,omitempty"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Currencies []string `json:"currencies"`
	Detail     string   `json:"detail"`
}

func Command() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Decode trades from CSV files (- reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (yaml, json or toml)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent decoders (overrides config)")
	cmd.Flags().StringVar(&opts.calendar, "calendar", "", "default holiday calendar (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	return cmd
}

func run(cmd *cobra.Command, files []string, opts options) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.calendar != "" {
		cfg.DefaultCalendar = opts.calendar
	}
	cal, err := calendar.ParseID(cfg.DefaultCalendar)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	l := loader.New(
		loader.WithWorkers(cfg.Workers),
		loader.WithLogger(cfg.Logger(cmd.ErrOrStderr())),
		loader.WithResolver(loader.NewStandardResolver(cal)),
	)

	var (
		summaries []Summary
		rejected  int
	)
	for _, file := range files {
		res, err := load(cmd.Context(), l, file, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoad, err)
		}
		for _, t := range res.Trades {
			summaries = append(summaries, Describe(file, t))
		}
		for _, f := range res.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: %v\n", file, f.Line, f.Err)
		}
		rejected += len(res.Failures)
	}

	if err := render(cmd.OutOrStdout(), opts.output, summaries); err != nil {
		return err
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d", ErrRejected, rejected)
	}
	return nil
}

func load(ctx context.Context, l *loader.Loader, file string, stdin io.Reader) (loader.Result, error) {
	if file == "-" {
		return l.Load(ctx, stdin)
	}
	return l.LoadFile(ctx, file)
}

// Describe flattens a trade into a Summary.
func Describe(file string, t product.Trade) Summary {
	info := t.Info()
	s := Summary{File: file, Type: string(t.ProductType())}
	if !info.ID.IsZero() {
		s.ID = info.ID.Value
	}
	if info.TradeDate.IsValid() {
		s.TradeDate = info.TradeDate.String()
	}

	switch tr := t.(type) {
	case swap.SwapTrade:
		p := tr.Product()
		s.Start, s.End = p.StartDate().String(), p.EndDate().String()
		for _, c := range p.AllCurrencies() {
			s.Currencies = append(s.Currencies, string(c))
		}
		legs := make([]string, 0, 2)
		for _, leg := range p.Legs() {
			legs = append(legs, fmt.Sprintf("%s %s", leg.PayReceive(), leg.Type()))
		}
		s.Detail = strings.Join(legs, " / ")
	case credit.CdsIndexTrade:
		p := tr.Product()
		s.Start, s.End = p.AccrualStartDate().String(), p.AccrualEndDate().String()
		s.Currencies = []string{string(p.Currency)}
		s.Detail = fmt.Sprintf("%s %s %s @ %s", p.BuySell, p.IndexID, p.Notional, p.FixedRate)
	}
	return s
}

func render(w io.Writer, format string, summaries []Summary) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if summaries == nil {
			summaries = []Summary{}
		}
		return enc.Encode(summaries)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Id", "Type", "Start", "End", "Currencies", "Detail"})
	table.SetAutoWrapText(false)
	for _, s := range summaries {
		table.Append([]string{s.File, s.ID, s.Type, s.Start, s.End, strings.Join(s.Currencies, ","), s.Detail})
	}
	table.Render()
	return nil
}
