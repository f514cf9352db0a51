package calendar

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ID identifies a holiday calendar.
type ID string

const (
	TARGET     ID = "TARGET"
	JPN        ID = "JPN"
	USD        ID = "USD"
	KRW        ID = "KRW"
	NoHolidays ID = "NONE"
)

var aliases = map[string]ID{
	"TARGET":     TARGET,
	"EUTA":       TARGET,
	"JPN":        JPN,
	"JPTO":       JPN,
	"USD":        USD,
	"USNY":       USD,
	"KRW":        KRW,
	"KRSE":       KRW,
	"NONE":       NoHolidays,
	"NOHOLIDAYS": NoHolidays,
}

// ParseID resolves a calendar name such as "TARGET" or "usny".
func ParseID(s string) (ID, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if id, ok := aliases[key]; ok {
		return id, nil
	}
	return "", fmt.Errorf("unknown holiday calendar %q", s)
}

// IsHoliday reports whether d is a holiday (weekends excluded) in the calendar.
func (cal ID) IsHoliday(d civil.Date) bool {
	switch cal {
	case TARGET:
		return targetHoliday(d)
	case JPN:
		return jpnHoliday(d)
	case USD:
		return usdHoliday(d)
	case KRW:
		return krwHoliday(d)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and the calendar's holidays.
func IsBusinessDay(cal ID, d civil.Date) bool {
	switch d.In(time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !cal.IsHoliday(d)
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal ID, d civil.Date, n int) civil.Date {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		d = d.AddDays(step)
		if IsBusinessDay(cal, d) {
			n -= step
		}
	}
	return d
}

func fixed(d civil.Date, month time.Month, day int) bool {
	return d.Month == month && d.Day == day
}

func targetHoliday(d civil.Date) bool {
	if fixed(d, time.January, 1) || fixed(d, time.May, 1) ||
		fixed(d, time.December, 25) || fixed(d, time.December, 26) {
		return true
	}
	easter := easterSunday(d.Year)
	return d == easter.AddDays(-2) || d == easter.AddDays(1)
}

func usdHoliday(d civil.Date) bool {
	if fixed(d, time.January, 1) || fixed(d, time.July, 4) || fixed(d, time.December, 25) {
		return true
	}
	// Thanksgiving, fourth Thursday of November.
	if d.Month == time.November && d.In(time.UTC).Weekday() == time.Thursday {
		return (d.Day-1)/7 == 3
	}
	return false
}

func jpnHoliday(d civil.Date) bool {
	if d.Month == time.January && d.Day <= 3 {
		return true
	}
	return fixed(d, time.December, 31)
}

func krwHoliday(d civil.Date) bool {
	return fixed(d, time.January, 1) || fixed(d, time.March, 1) ||
		fixed(d, time.May, 5) || fixed(d, time.June, 6) ||
		fixed(d, time.August, 15) || fixed(d, time.October, 3) ||
		fixed(d, time.October, 9) || fixed(d, time.December, 25)
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) civil.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return civil.Date{Year: year, Month: time.Month(month), Day: day}
}
