package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/config"
	"github.com/meenmo/tradelib/product"
)

// Failure is a trade that could not be decoded. It never aborts the batch.
type Failure struct {
	// Line of the trade's primary row.
	Line  int
	Token string
	Err   error
}

func (f Failure) Error() string { return f.Err.Error() }
func (f Failure) Unwrap() error { return f.Err }

// Result holds the trades decoded from a file, in file order, and the rows that failed.
type Result struct {
	Trades   []product.Trade
	Failures []Failure
}

func (r Result) HasFailures() bool { return len(r.Failures) > 0 }

// Loader turns CSV rows into trades using a plugin registry and a resolver.
type Loader struct {
	registry *Registry
	resolver Resolver
	workers  int
	logger   zerolog.Logger
	metrics  *Metrics
}

type Option func(*Loader)

func WithRegistry(r *Registry) Option { return func(l *Loader) { l.registry = r } }
func WithResolver(r Resolver) Option  { return func(l *Loader) { l.resolver = r } }
func WithLogger(lg zerolog.Logger) Option {
	return func(l *Loader) { l.logger = lg }
}
func WithMetrics(m *Metrics) Option { return func(l *Loader) { l.metrics = m } }

// WithWorkers bounds concurrent decoding. Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(l *Loader) { l.workers = max(n, 1) }
}

// New builds a Loader. Unset options come from config.GetConfig and DefaultRegistry.
func New(opts ...Option) *Loader {
	cfg := config.GetConfig()
	cal, err := calendar.ParseID(cfg.DefaultCalendar)
	if err != nil {
		cal = calendar.NoHolidays
	}
	l := &Loader{
		registry: DefaultRegistry(),
		resolver: NewStandardResolver(cal),
		workers:  max(cfg.Workers, 1),
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a CSV file and decodes every trade in it.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Result{}, fmt.Errorf("Load: %w", err)
	}
	return l.ParseRows(ctx, rows)
}

func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("LoadFile: %w", err)
	}
	defer f.Close()

	res, err := l.Load(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("LoadFile %s: %w", path, err)
	}
	return res, nil
}

// group is a primary row with its continuation rows.
type group struct {
	primary    CsvRow
	additional []CsvRow
	token      string
	plugin     Plugin
	// err is set when no plugin could be chosen.
	err error
}

type outcome struct {
	trade   product.Trade
	failure *Failure
}

// ParseRows decodes rows already read from a file.
//
// Only cancellation of ctx returns an error; everything else is reported per
// trade in Result.Failures.
func (l *Loader) ParseRows(ctx context.Context, rows []CsvRow) (Result, error) {
	logger := l.logger.With().Str("run", uuid.NewString()).Logger()
	groups := l.groupRows(rows)

	outcomes := make([]outcome, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = l.decode(groups[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("ParseRows: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("ParseRows: %w", err)
	}

	var res Result
	for _, o := range outcomes {
		if o.failure != nil {
			logger.Warn().Int("line", o.failure.Line).Str("token", o.failure.Token).Err(o.failure.Err).Msg("trade rejected")
			res.Failures = append(res.Failures, *o.failure)
			continue
		}
		res.Trades = append(res.Trades, o.trade)
	}
	logger.Info().
		Int("rows", len(rows)).
		Int("trades", len(res.Trades)).
		Int("failures", len(res.Failures)).
		Msg("trade file loaded")
	return res, nil
}

// groupRows attaches continuation rows to their primary row. Blank-type rows
// after an unknown trade type belong to that failed trade.
func (l *Loader) groupRows(rows []CsvRow) []group {
	var groups []group
	for _, row := range rows {
		token, _ := row.Field(TypeField)
		if token == "" && len(groups) > 0 {
			last := &groups[len(groups)-1]
			switch {
			case last.plugin != nil && last.plugin.AdditionalRow(last.primary, row):
				last.additional = append(last.additional, row)
				continue
			case last.plugin == nil && errors.Is(last.err, ErrUnknownType):
				last.additional = append(last.additional, row)
				continue
			}
		}
		p, err := l.registry.Dispatch(row)
		groups = append(groups, group{primary: row, token: token, plugin: p, err: err})
	}
	return groups
}

func (l *Loader) decode(g group) (out outcome) {
	line := g.primary.Line()
	fail := func(outcomeLabel, plugin string, err error) outcome {
		l.metrics.observe(plugin, outcomeLabel)
		return outcome{failure: &Failure{Line: line, Token: g.token, Err: err}}
	}
	if g.err != nil {
		label := OutcomeFailed
		if errors.Is(g.err, ErrUnknownType) {
			label = OutcomeUnknown
		}
		return fail(label, "", g.err)
	}

	name := g.plugin.Name()
	defer func() {
		if r := recover(); r != nil {
			out = fail(OutcomeFailed, name, fmt.Errorf("line %d: plugin %s panicked: %v", line, name, r))
		}
	}()

	info, err := parseTradeInfo(g.primary)
	if err != nil {
		return fail(OutcomeFailed, name, err)
	}
	if info, err = l.resolver.ParseTradeInfo(g.primary, info); err != nil {
		return fail(OutcomeFailed, name, err)
	}
	trade, err := g.plugin.ParseTrade(g.primary, g.additional, info, l.resolver)
	if err != nil {
		return fail(OutcomeFailed, name, err)
	}
	if trade == nil {
		return fail(OutcomeFailed, name, fmt.Errorf("line %d: plugin %s returned no trade", line, name))
	}
	l.metrics.observe(name, OutcomeDecoded)
	l.logger.Debug().Int("line", line).Str("plugin", name).Msg("trade decoded")
	return outcome{trade: trade}
}
