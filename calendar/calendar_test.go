package calendar_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/calendar"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestTargetEasterHolidays(t *testing.T) {
	t.Parallel()

	// Easter 2025 is 20 April.
	assert.False(t, calendar.IsBusinessDay(calendar.TARGET, date(2025, 4, 18)))
	assert.False(t, calendar.IsBusinessDay(calendar.TARGET, date(2025, 4, 21)))
	assert.True(t, calendar.IsBusinessDay(calendar.TARGET, date(2025, 4, 22)))
	assert.True(t, calendar.IsBusinessDay(calendar.USD, date(2025, 4, 18)))
}

func TestUSDThanksgiving(t *testing.T) {
	t.Parallel()

	assert.False(t, calendar.IsBusinessDay(calendar.USD, date(2025, 11, 27)))
	assert.True(t, calendar.IsBusinessDay(calendar.USD, date(2025, 11, 20)))
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		adj  calendar.Adjustment
		in   civil.Date
		want civil.Date
	}{
		"zero value leaves weekend": {
			adj:  calendar.Adjustment{},
			in:   date(2025, 5, 31),
			want: date(2025, 5, 31),
		},
		"following crosses month": {
			adj:  calendar.NewAdjustment(calendar.Following, calendar.NoHolidays),
			in:   date(2025, 5, 31),
			want: date(2025, 6, 2),
		},
		"modified following stays in month": {
			adj:  calendar.NewAdjustment(calendar.ModifiedFollowing, calendar.NoHolidays),
			in:   date(2025, 5, 31),
			want: date(2025, 5, 30),
		},
		"preceding": {
			adj:  calendar.NewAdjustment(calendar.Preceding, calendar.NoHolidays),
			in:   date(2025, 6, 1),
			want: date(2025, 5, 30),
		},
		"modified preceding stays in month": {
			adj:  calendar.NewAdjustment(calendar.ModifiedPreceding, calendar.NoHolidays),
			in:   date(2025, 6, 1),
			want: date(2025, 6, 2),
		},
		"following skips TARGET new year": {
			adj:  calendar.NewAdjustment(calendar.Following, calendar.TARGET),
			in:   date(2026, 1, 1),
			want: date(2026, 1, 2),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.adj.Adjust(tt.in))
		})
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Friday + 1 business day is Monday; JPN new year pushes further.
	assert.Equal(t, date(2025, 6, 2), calendar.AddBusinessDays(calendar.NoHolidays, date(2025, 5, 30), 1))
	assert.Equal(t, date(2025, 5, 30), calendar.AddBusinessDays(calendar.NoHolidays, date(2025, 6, 2), -1))
	assert.Equal(t, date(2025, 1, 6), calendar.AddBusinessDays(calendar.JPN, date(2024, 12, 30), 1))
}

func TestParse(t *testing.T) {
	t.Parallel()

	id, err := calendar.ParseID(" usny ")
	require.NoError(t, err)
	assert.Equal(t, calendar.USD, id)

	_, err = calendar.ParseID("MARS")
	assert.Error(t, err)

	conv, err := calendar.ParseConvention("Modified Following")
	require.NoError(t, err)
	assert.Equal(t, calendar.ModifiedFollowing, conv)

	conv, err = calendar.ParseConvention("MODFOLLOW")
	require.NoError(t, err)
	assert.Equal(t, calendar.ModifiedFollowing, conv)

	_, err = calendar.ParseConvention("sideways")
	assert.Error(t, err)
}
