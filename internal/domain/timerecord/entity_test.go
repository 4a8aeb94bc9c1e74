package timerecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkedHours(t *testing.T) {
	cases := []struct {
		name              string
		in, out, breakMin int
		want              string
	}{
		{"full day with break", 8 * 60, 17 * 60, 30, "8.5"},
		{"no break", 9 * 60, 15 * 60, 0, "6"},
		{"repeating fraction", 9 * 60, 9*60 + 20, 0, "0.33"},
		{"break longer than shift", 9 * 60, 9*60 + 10, 30, "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkedHours(c.in, c.out, c.breakMin).String())
		})
	}
}

func TestClockOutRequest_Validate(t *testing.T) {
	out := "25:00"
	req := ClockOutRequest{UserID: "1", TimeOut: &out}
	assert.Error(t, req.Validate())

	req = ClockOutRequest{UserID: "1"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, DefaultBreakMinutes, req.Break())

	negative := -5
	req = ClockOutRequest{UserID: "1", BreakMinutes: &negative}
	assert.Error(t, req.Validate())
}
