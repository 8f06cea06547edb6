package duration

import (
	"math"
	"slices"
	"testing"
)

func TestConstructors(t *testing.T) {
	d := Hours(3)
	if d.Hours() != 3 {
		t.Errorf("Hours() = %v, want 3", d.Hours())
	}
	if d.Minutes() != 180 {
		t.Errorf("Minutes() = %v, want 180", d.Minutes())
	}
	if d.Seconds() != 180*60 {
		t.Errorf("Seconds() = %v, want %v", d.Seconds(), 180*60)
	}
	if d.Days() != 3.0/24.0 {
		t.Errorf("Days() = %v, want %v", d.Days(), 3.0/24.0)
	}
	if d.Milliseconds() != 180*60*1000 {
		t.Errorf("Milliseconds() = %v, want %v", d.Milliseconds(), 180*60*1000)
	}
	if !d.IsPositive() {
		t.Error("IsPositive() = false, want true")
	}

	ms := Milliseconds(55)
	if ms.Seconds() != 0.055 {
		t.Errorf("Seconds() = %v, want 0.055", ms.Seconds())
	}
	if ms.Milliseconds() != 55 {
		t.Errorf("Milliseconds() = %v, want 55", ms.Milliseconds())
	}
	if ms.Microseconds() != 55000 {
		t.Errorf("Microseconds() = %v, want 55000", ms.Microseconds())
	}
	if ms.Nanoseconds() != 55000000 {
		t.Errorf("Nanoseconds() = %v, want 55000000", ms.Nanoseconds())
	}
	if ms.IsZero() {
		t.Error("IsZero() = true, want false")
	}

	neg := Minutes(-3)
	if neg.Minutes() != -3 {
		t.Errorf("Minutes() = %v, want -3", neg.Minutes())
	}
	if neg.Hours() != -0.05 {
		t.Errorf("Hours() = %v, want -0.05", neg.Hours())
	}
	if !neg.IsNegative() {
		t.Error("IsNegative() = false, want true")
	}
}

func TestUnitEquivalences(t *testing.T) {
	tests := []struct {
		name string
		a, b Duration
	}{
		{"1.5 days is 36 hours", Days(1.5), Hours(36)},
		{"30 minutes is half an hour", Minutes(30), Hours(0.5)},
		{"180 seconds is 3 minutes", Seconds(180), Minutes(3)},
		{"3.5 seconds is 3500 ms", Seconds(3.5), Milliseconds(3500)},
		{"300 us is 0.3 ms", Microseconds(300), Milliseconds(0.30)},
		{"1000 ns is 1 us", Nanoseconds(1000), Microseconds(1)},
		{"2 years is 730 days", Years(2), Days(365 * 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a != tt.b {
				t.Errorf("%v != %v", tt.a.Seconds(), tt.b.Seconds())
			}
		})
	}
}

func TestHoursToMinutesIsPureRescaling(t *testing.T) {
	for _, x := range []float64{0, 1, 1.5, 0.25, 3, 100, -7.5, 1e6} {
		if got := Hours(x).Minutes(); got != x*60 {
			t.Errorf("Hours(%v).Minutes() = %v, want %v", x, got, x*60)
		}
	}
}

func TestZeroAndSign(t *testing.T) {
	if !Zero().IsZero() {
		t.Error("Zero().IsZero() = false")
	}
	if Zero() != (Duration{}) {
		t.Error("Zero() differs from the zero value")
	}

	negZero := Zero().Neg()
	if !negZero.IsZero() {
		t.Error("negative zero should be zero")
	}
	if !negZero.IsNegative() {
		t.Error("negative zero should report negative")
	}
	if negZero != Zero() {
		t.Error("negative zero should equal zero")
	}
	if Zero().IsNegative() {
		t.Error("zero should not report negative")
	}

	if MinValue().Seconds() != -math.MaxFloat64 {
		t.Errorf("MinValue() = %v", MinValue().Seconds())
	}
	if MaxValue().Seconds() != math.MaxFloat64 {
		t.Errorf("MaxValue() = %v", MaxValue().Seconds())
	}
	if Minutes(-2).Abs() != Minutes(2) {
		t.Errorf("Abs() = %v, want 2 minutes", Minutes(-2).Abs())
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Duration
		want Duration
	}{
		{"add", Minutes(5).Add(Seconds(30)), Seconds(330)},
		{"mul", Hours(3).Mul(2.5), Hours(7.5)},
		{"div then sub", Days(3).Div(3).Sub(Hours(2)), Hours(22)},
		{"chained add", Zero().Add(Milliseconds(500)).Add(Microseconds(500)), Microseconds(500500)},
		{"scale", Scale(2, Milliseconds(150)), Milliseconds(300)},
		{"double negation", Minutes(5).Neg().Mul(-1), Minutes(5)},
		{"sub below zero", Seconds(10).Sub(Minutes(1)), Seconds(-50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got.Seconds(), tt.want.Seconds())
			}
		})
	}

	if r := Minutes(10).Ratio(Seconds(60)); r != 10 {
		t.Errorf("Ratio() = %v, want 10", r)
	}
}

func TestDivisionByZeroPropagates(t *testing.T) {
	inf := Seconds(10).Div(0)
	if !math.IsInf(inf.Seconds(), 1) {
		t.Errorf("Seconds(10).Div(0) = %v, want +Inf", inf.Seconds())
	}
	if !math.IsInf(inf.Years(), 1) || !math.IsInf(inf.Microseconds(), 1) {
		t.Error("infinity should propagate through unit accessors")
	}
	if inf.IsFinite() {
		t.Error("IsFinite() = true for infinity")
	}

	if r := Hours(10).Ratio(Minutes(0)); !math.IsInf(r, 1) {
		t.Errorf("Ratio by zero = %v, want +Inf", r)
	}
	if r := Zero().Ratio(Zero()); !math.IsNaN(r) {
		t.Errorf("0/0 = %v, want NaN", r)
	}

	nan := Zero().Div(0)
	if nan.Equal(nan) {
		t.Error("NaN duration should not equal itself")
	}
	if nan.Add(Hours(1)).IsFinite() {
		t.Error("NaN should propagate through Add")
	}
}

func TestAssignVariants(t *testing.T) {
	d := Minutes(1)
	d.AddAssign(Seconds(30))
	if d != Seconds(90) {
		t.Errorf("AddAssign: got %v", d.Seconds())
	}
	d.SubAssign(Seconds(60))
	if d != Seconds(30) {
		t.Errorf("SubAssign: got %v", d.Seconds())
	}
	d.MulAssign(4)
	if d != Minutes(2) {
		t.Errorf("MulAssign: got %v", d.Seconds())
	}
	d.DivAssign(8)
	if d != Seconds(15) {
		t.Errorf("DivAssign: got %v", d.Seconds())
	}
}

func TestSum(t *testing.T) {
	if got := Sum(); got != Zero() {
		t.Errorf("Sum() = %v, want zero", got)
	}
	if got := Sum(Milliseconds(50), Milliseconds(30), Zero()); got != Milliseconds(80) {
		t.Errorf("Sum() = %v, want 80ms", got.Seconds())
	}
	if got := Sum(Days(2)); got != Days(2) {
		t.Errorf("Sum() = %v, want 2 days", got)
	}

	ds := []Duration{Hours(1), Minutes(30), Minutes(30)}
	if got := SumSeq(slices.Values(ds)); got != Hours(2) {
		t.Errorf("SumSeq() = %v, want 2 hours", got)
	}
	if got := SumSeq(slices.Values([]Duration(nil))); got != Zero() {
		t.Errorf("SumSeq(empty) = %v, want zero", got)
	}
}

func TestOrdering(t *testing.T) {
	ds := []Duration{Hours(1), Seconds(-5), Minutes(2), Zero()}
	slices.SortFunc(ds, Duration.Compare)
	want := []Duration{Seconds(-5), Zero(), Minutes(2), Hours(1)}
	if !slices.Equal(ds, want) {
		t.Errorf("sorted = %v, want %v", ds, want)
	}

	if !Seconds(1).Less(Seconds(2)) {
		t.Error("1s should be less than 2s")
	}
	if Zero().Neg().Less(Zero()) {
		t.Error("negative zero should not be less than zero")
	}
	if Zero().Neg().Compare(Zero()) != 0 {
		t.Error("negative zero should compare equal to zero")
	}
	if !Hours(1).Equal(Minutes(60)) {
		t.Error("1h should equal 60m")
	}
}

func TestApproxEqual(t *testing.T) {
	if !Seconds(0.1).Add(Seconds(0.2)).ApproxEqual(Seconds(0.3), 1e-12) {
		t.Error("0.1+0.2 should be approximately 0.3")
	}
	if Seconds(1).ApproxEqual(Seconds(1.1), 1e-3) {
		t.Error("1s and 1.1s should not be approximately equal")
	}
	if !Years(1e6).ApproxEqual(Years(1e6).Add(Seconds(1)), 1e-9) {
		t.Error("relative tolerance should apply to large values")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Minutes(3.5), "3.5 minutes"},
		{Days(3).Add(Hours(12)), "3.5 days"},
		{Seconds(12.7), "12.7 seconds"},
		{Duration{}, "0 nanoseconds"},
		{Microseconds(100), "100 microseconds"},
		{Milliseconds(12.5), "12.5 milliseconds"},
		{Days(325).Add(Hours(6)), "325.25 days"},
		{Milliseconds(50).Add(Microseconds(500)), "50.5 milliseconds"},
		{Nanoseconds(25.25), "25.25 nanoseconds"},
		{Minutes(90), "1.5 hours"},
		{Years(2.5), "2.5 years"},
		{Days(1), "24 hours"},
		{Hours(1), "60 minutes"},
		{Seconds(1), "1000 milliseconds"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
