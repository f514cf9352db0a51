package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Frequency enumerates payment frequencies.
type Frequency string

const (
	Monthly    Frequency = "P1M"
	Quarterly  Frequency = "P3M"
	SemiAnnual Frequency = "P6M"
	Annual     Frequency = "P12M"
	Term       Frequency = "TERM"
)

// ParseFrequency accepts period codes ("3M", "P6M", "1Y") and names ("Quarterly", "Term").
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	switch key {
	case "P1M", "1M", "MONTHLY":
		return Monthly, nil
	case "P3M", "3M", "QUARTERLY":
		return Quarterly, nil
	case "P6M", "6M", "SEMIANNUAL", "SEMI-ANNUAL":
		return SemiAnnual, nil
	case "P12M", "12M", "P1Y", "1Y", "ANNUAL":
		return Annual, nil
	case "TERM", "T", "ZERO":
		return Term, nil
	default:
		return "", fmt.Errorf("%w: frequency %q", ErrInvalidValue, s)
	}
}

// Months returns the period length in months, zero for Term.
func (f Frequency) Months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case SemiAnnual:
		return 6
	case Annual:
		return 12
	default:
		return 0
	}
}

// DayCount is a day count convention.
type DayCount string

const (
	Act360  DayCount = "ACT/360"
	Act365F DayCount = "ACT/365F"
	Act365  DayCount = "ACT/365"
	Dc30360 DayCount = "30/360"
	Dc30E   DayCount = "30E/360"
)

// ParseDayCount accepts case variants such as "Act/360" and "act/365 fixed".
func ParseDayCount(s string) (DayCount, error) {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "")
	switch key {
	case "ACT/360", "A360":
		return Act360, nil
	case "ACT/365F", "ACT/365FIXED", "A365F":
		return Act365F, nil
	case "ACT/365", "A365":
		return Act365, nil
	case "30/360", "30U/360", "30/360ISDA":
		return Dc30360, nil
	case "30E/360", "30/360EUROBOND":
		return Dc30E, nil
	default:
		return "", fmt.Errorf("%w: day count %q", ErrInvalidValue, s)
	}
}

// YearFraction computes the accrual fraction between two dates.
func (dc DayCount) YearFraction(start, end civil.Date) float64 {
	switch dc {
	case Act360:
		return float64(end.DaysSince(start)) / 360.0
	case Dc30360:
		d1, d2 := start.Day, end.Day
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case Dc30E:
		d1, d2 := min(start.Day, 30), min(end.Day, 30)
		return thirty360(start, end, d1, d2)
	default:
		return float64(end.DaysSince(start)) / 365.0
	}
}

func thirty360(start, end civil.Date, d1, d2 int) float64 {
	y := end.Year - start.Year
	m := int(end.Month) - int(start.Month)
	return float64(360*y+30*m+(d2-d1)) / 360.0
}

// Tenor is a period expressed in months and days, such as 5Y or 2W.
type Tenor struct {
	Months int
	Days   int
}

// ParseTenor accepts "10D", "2W", "18M" and "5Y".
func ParseTenor(s string) (Tenor, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "P")
	if len(key) < 2 {
		return Tenor{}, fmt.Errorf("%w: tenor %q", ErrInvalidValue, s)
	}
	n, err := strconv.Atoi(key[:len(key)-1])
	if err != nil || n <= 0 {
		return Tenor{}, fmt.Errorf("%w: tenor %q", ErrInvalidValue, s)
	}
	switch key[len(key)-1] {
	case 'D':
		return Tenor{Days: n}, nil
	case 'W':
		return Tenor{Days: 7 * n}, nil
	case 'M':
		return Tenor{Months: n}, nil
	case 'Y':
		return Tenor{Months: 12 * n}, nil
	default:
		return Tenor{}, fmt.Errorf("%w: tenor %q", ErrInvalidValue, s)
	}
}

// AddTo adds the tenor to d, clamping to month end like Excel's EDATE.
func (t Tenor) AddTo(d civil.Date) civil.Date {
	if t.Months != 0 {
		first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, t.Months, 0)
		last := first.AddDate(0, 1, -1).Day()
		d = civil.Date{Year: first.Year(), Month: first.Month(), Day: min(d.Day, last)}
	}
	return d.AddDays(t.Days)
}

func (t Tenor) String() string {
	switch {
	case t.Months != 0 && t.Months%12 == 0 && t.Days == 0:
		return fmt.Sprintf("%dY", t.Months/12)
	case t.Months != 0 && t.Days == 0:
		return fmt.Sprintf("%dM", t.Months)
	case t.Months == 0:
		return fmt.Sprintf("%dD", t.Days)
	default:
		return fmt.Sprintf("%dM%dD", t.Months, t.Days)
	}
}
