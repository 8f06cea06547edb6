package duration

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestToStd(t *testing.T) {
	std, err := Minutes(5).ToStd()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, std)
	assert.Equal(t, Minutes(5), FromStd(std))

	std, err = Hours(-2).Neg().ToStd()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, std)

	std, err = Zero().ToStd()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), std)

	std, err = Milliseconds(1500).ToStd()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, std)
}

func TestToStd_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
	}{
		{"negative", Hours(-2)},
		{"one negative nanosecond", Nanoseconds(-1)},
		{"negative zero", Zero().Neg()},
		{"max value", MaxValue()},
		{"min value", MinValue()},
		{"positive infinity", Seconds(math.Inf(1))},
		{"negative infinity", Seconds(math.Inf(-1))},
		{"nan", Seconds(math.NaN())},
		{"one second past the limit", Seconds(float64(maxStdSeconds) + 1)},
		{"inside the last second but past the limit", Seconds(float64(maxStdSeconds) + 0.9)},
		{"a thousand years", Years(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.ToStd()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange), "error should wrap ErrOutOfRange: %v", err)
		})
	}
}

func TestToStd_Limit(t *testing.T) {
	std, err := Seconds(float64(maxStdSeconds)).ToStd()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(maxStdSeconds)*time.Second, std)
}

func TestToStd_CarriesRoundedUpSecond(t *testing.T) {
	// The fraction rounds to 1e9 nanoseconds and must become a whole second.
	std, err := Seconds(0.9999999999).ToStd()
	require.NoError(t, err)
	assert.Equal(t, time.Second, std)

	std, err = Seconds(41.9999999999).ToStd()
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, std)
}

func TestFromStd(t *testing.T) {
	assert.Equal(t, Nanoseconds(1), FromStd(time.Nanosecond))
	assert.Equal(t, Seconds(1).Add(Nanoseconds(1)), FromStd(time.Second+time.Nanosecond))
	assert.Equal(t, Hours(2), FromStd(2*time.Hour))
	assert.Equal(t, Seconds(-1.5), FromStd(-1500*time.Millisecond))

	maxStd := FromStd(math.MaxInt64)
	assert.InDelta(t, float64(math.MaxInt64)/1e9, maxStd.Seconds(), 1e-5)
}

func TestStdRoundTrip(t *testing.T) {
	values := []Duration{
		Zero(),
		Nanoseconds(1),
		Milliseconds(55),
		Seconds(1.5),
		Seconds(12.345678),
		Minutes(3),
		Hours(36),
		Days(365),
		Years(200),
	}

	for _, d := range values {
		t.Run(d.String(), func(t *testing.T) {
			std, err := d.ToStd()
			require.NoError(t, err)
			back := FromStd(std)
			assert.True(t, back.ApproxEqual(d, 1e-12), "round trip %v -> %v -> %v", d.Seconds(), std, back.Seconds())
		})
	}

	// Dyadic values survive exactly.
	for _, d := range []Duration{Seconds(0.5), Seconds(1.25), Minutes(7.5), Hours(1e3)} {
		std, err := d.ToStd()
		require.NoError(t, err)
		assert.Equal(t, d, FromStd(std))
	}
}

func TestToProto(t *testing.T) {
	tests := []struct {
		name  string
		d     Duration
		secs  int64
		nanos int32
	}{
		{"minutes", Minutes(2.5), 150, 0},
		{"sub-millisecond", Milliseconds(250.050), 0, 250050000},
		{"negative nanoseconds", Nanoseconds(-20), 0, -20},
		{"negative mixed", Seconds(-1.5), -1, -500000000},
		{"zero", Zero(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb, err := tt.d.ToProto()
			require.NoError(t, err)
			assert.Equal(t, tt.secs, pb.GetSeconds())
			assert.Equal(t, tt.nanos, pb.GetNanos())
			assert.NoError(t, pb.CheckValid())
		})
	}
}

func TestToProto_OutOfRange(t *testing.T) {
	for _, d := range []Duration{MaxValue(), MinValue(), Seconds(math.NaN()), Years(-1000)} {
		_, err := d.ToProto()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestFromProto(t *testing.T) {
	tests := []struct {
		name string
		pb   *durationpb.Duration
		want Duration
	}{
		{"ten minutes", durationpb.New(10 * time.Minute), Minutes(10)},
		{"three days", durationpb.New(72 * time.Hour), Days(3)},
		{"nanoseconds", durationpb.New(500 * time.Nanosecond), Nanoseconds(500)},
		{"negative", durationpb.New(-20000 * time.Microsecond), Milliseconds(-20)},
		{"zero", durationpb.New(0), Zero()},
		{"ten thousand hours", durationpb.New(10000 * time.Hour), Hours(10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromProto(tt.pb)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromProto_MillisecondFallback(t *testing.T) {
	// About 3170 years: the nanosecond count overflows int64.
	pb := &durationpb.Duration{Seconds: 100_000_000_000, Nanos: 123_456_789}
	require.NoError(t, pb.CheckValid())

	got, err := FromProto(pb)
	require.NoError(t, err)
	assert.Equal(t, Milliseconds(100_000_000_000_123), got)

	neg := &durationpb.Duration{Seconds: -100_000_000_000, Nanos: -123_456_789}
	got, err = FromProto(neg)
	require.NoError(t, err)
	assert.Equal(t, Milliseconds(-100_000_000_000_123), got)
}

func TestFromProto_Invalid(t *testing.T) {
	tests := []struct {
		name string
		pb   *durationpb.Duration
	}{
		{"nil", nil},
		{"mismatched signs", &durationpb.Duration{Seconds: 1, Nanos: -1}},
		{"nanos overflow", &durationpb.Duration{Seconds: 0, Nanos: 1_000_000_000}},
		{"beyond ten thousand years", &durationpb.Duration{Seconds: 315_576_000_001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromProto(tt.pb)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestProtoRoundTrip(t *testing.T) {
	for _, d := range []Duration{Minutes(-3), Seconds(0.25), Hours(-1e4), Days(100)} {
		pb, err := d.ToProto()
		require.NoError(t, err)
		back, err := FromProto(pb)
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}
}
