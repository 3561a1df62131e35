package agecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"day before birthday", date(2000, time.June, 15), date(2024, time.June, 14), 23},
		{"on birthday", date(2000, time.June, 15), date(2024, time.June, 15), 24},
		{"day after birthday", date(2000, time.June, 15), date(2024, time.June, 16), 24},
		{"earlier month", date(2000, time.June, 15), date(2024, time.March, 20), 23},
		{"later month", date(2000, time.June, 15), date(2024, time.November, 1), 24},
		{"new year's day", date(1999, time.December, 31), date(2024, time.January, 1), 24},
		{"same year", date(2024, time.February, 1), date(2024, time.August, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, tt.now))
		})
	}
}

func TestParseDOB(t *testing.T) {
	dob, err := ParseDOB("2000-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2000, dob.Year())
	assert.Equal(t, time.June, dob.Month())
	assert.Equal(t, 15, dob.Day())

	_, err = ParseDOB("15/06/2000")
	assert.Error(t, err)

	_, err = ParseDOB("")
	assert.Error(t, err)
}
