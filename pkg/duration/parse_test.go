package duration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Duration
	}{
		{"90", Seconds(90)},
		{"90s", Seconds(90)},
		{"1.5 hours", Hours(1.5)},
		{"1.5h", Hours(1.5)},
		{"-3 minutes", Minutes(-3)},
		{"3m", Minutes(3)},
		{"2.5e3 ms", Milliseconds(2500)},
		{"100 microseconds", Microseconds(100)},
		{"100µs", Microseconds(100)},
		{"7 NS", Nanoseconds(7)},
		{"  2 days  ", Days(2)},
		{"1 year", Years(1)},
		{"0.25sec", Seconds(0.25)},
		{"+4 hr", Hours(4)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NonFinite(t *testing.T) {
	d, err := Parse("Inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(d.Seconds(), 1))

	d, err = Parse("-inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(d.Seconds(), -1))

	d, err = Parse("NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d.Seconds()))

	d, err = Parse("-Inf seconds")
	require.NoError(t, err)
	assert.True(t, math.IsInf(d.Seconds(), -1))
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "seconds", "1.2.3s", "5 fortnights", "--3s", "abc"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParse_AcceptsString(t *testing.T) {
	values := []Duration{
		Years(2.5), Days(3.5), Hours(1.5), Minutes(3.5), Seconds(12.7),
		Milliseconds(12.5), Microseconds(100), Nanoseconds(25.25), Zero(), Minutes(-2),
	}

	for _, d := range values {
		t.Run(d.String(), func(t *testing.T) {
			back, err := Parse(d.String())
			require.NoError(t, err)
			assert.True(t, back.ApproxEqual(d, 1e-12), "%q parsed to %v seconds", d.String(), back.Seconds())
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, Minutes(5), MustParse("5m"))
	assert.Panics(t, func() { MustParse("later") })
}
