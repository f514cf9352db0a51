package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/product/common"
)

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"02/01/2006",
	"2-Jan-2006",
	"2 Jan 2006",
}

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
	timeLayouts = []string{"15:04:05.999999999", "15:04"}
	numberStrip = strings.NewReplacer(",", "", "_", "", " ", "")
)

func parseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("%w: date %q", common.ErrInvalidValue, s)
}

func parseTime(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.TimeOf(t), nil
		}
	}
	return civil.Time{}, fmt.Errorf("%w: time %q", common.ErrInvalidValue, s)
}

func parseZone(s string) (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q: %v", common.ErrInvalidValue, s, err)
	}
	return loc, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(numberStrip.Replace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: number %q", common.ErrInvalidValue, s)
	}
	return d, nil
}

// parsePercent reads "2.5" or "2.5%" as 0.025.
func parsePercent(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(hundred), nil
}

// parseBasisPoints reads "25" or "25bp" as 0.0025.
func parseBasisPoints(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "bps"), "bp")
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(tenThousand), nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: integer %q", common.ErrInvalidValue, s)
	}
	return n, nil
}

func parseText(s string) (string, error) { return s, nil }

// required decodes a mandatory column.
func required[T any](row CsvRow, field string, parse func(string) (T, error)) (T, error) {
	var zero T
	v, err := row.Value(field)
	if err != nil {
		return zero, err
	}
	out, err := parse(v)
	if err != nil {
		return zero, fieldError(row, field, err)
	}
	return out, nil
}

// optional decodes a column that may be blank, returning def when it is.
func optional[T any](row CsvRow, field string, parse func(string) (T, error), def T) (T, error) {
	v, ok := row.Field(field)
	if !ok {
		return def, nil
	}
	out, err := parse(v)
	if err != nil {
		return def, fieldError(row, field, err)
	}
	return out, nil
}

// firstField returns the first of fields that has a value.
func firstField(row CsvRow, fields ...string) (string, bool) {
	for _, f := range fields {
		if _, ok := row.Field(f); ok {
			return f, true
		}
	}
	return "", false
}
