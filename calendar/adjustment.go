package calendar

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Convention is a business day roll convention.
type Convention string

const (
	NoAdjust          Convention = "NONE"
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
	Preceding         Convention = "PRECEDING"
	ModifiedPreceding Convention = "MODIFIED_PRECEDING"
)

// ParseConvention accepts "ModifiedFollowing", "modified following", "MODFOLLOW" and similar spellings.
func ParseConvention(s string) (Convention, error) {
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToUpper(strings.TrimSpace(s)))
	switch key {
	case "NONE", "NOADJUST", "UNADJUSTED":
		return NoAdjust, nil
	case "FOLLOWING", "F", "FOLLOW":
		return Following, nil
	case "MODIFIEDFOLLOWING", "MF", "MODFOLLOW":
		return ModifiedFollowing, nil
	case "PRECEDING", "P", "PRECEDE":
		return Preceding, nil
	case "MODIFIEDPRECEDING", "MP", "MODPRECEDE":
		return ModifiedPreceding, nil
	default:
		return "", fmt.Errorf("unknown business day convention %q", s)
	}
}

// Adjustment pairs a roll convention with the calendar it rolls against.
//
// The zero value leaves dates unchanged.
type Adjustment struct {
	Convention Convention
	Calendar   ID
}

// NewAdjustment builds an Adjustment, defaulting an empty calendar to NoHolidays.
func NewAdjustment(conv Convention, cal ID) Adjustment {
	if cal == "" {
		cal = NoHolidays
	}
	return Adjustment{Convention: conv, Calendar: cal}
}

// Adjust rolls d onto a business day.
func (a Adjustment) Adjust(d civil.Date) civil.Date {
	switch a.Convention {
	case Following:
		return roll(a.Calendar, d, 1)
	case Preceding:
		return roll(a.Calendar, d, -1)
	case ModifiedFollowing:
		adj := roll(a.Calendar, d, 1)
		if adj.Month != d.Month {
			return roll(a.Calendar, d, -1)
		}
		return adj
	case ModifiedPreceding:
		adj := roll(a.Calendar, d, -1)
		if adj.Month != d.Month {
			return roll(a.Calendar, d, 1)
		}
		return adj
	default:
		return d
	}
}

func (a Adjustment) String() string {
	if a.Convention == "" || a.Convention == NoAdjust {
		return string(NoAdjust)
	}
	return fmt.Sprintf("%s/%s", a.Convention, a.Calendar)
}

func roll(cal ID, d civil.Date, step int) civil.Date {
	for !IsBusinessDay(cal, d) {
		d = d.AddDays(step)
	}
	return d
}
