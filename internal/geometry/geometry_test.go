package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapperCorners(t *testing.T) {
	m := NewMapper(0, 0)
	tests := []struct {
		x, y   float64
		wantPX float64
		wantPY float64
	}{
		{0, 0, 0, 500},
		{2200, 1000, 1100, 0},
		{1100, 500, 550, 250},
		{4400, -1000, 2200, 1000},
	}
	for _, tc := range tests {
		p := m.ToScreen(tc.x, tc.y, 1100, 500)
		if !almostEqual(p.X, tc.wantPX) || !almostEqual(p.Y, tc.wantPY) {
			t.Fatalf("ToScreen(%v,%v) = %+v, want (%v,%v)", tc.x, tc.y, p, tc.wantPX, tc.wantPY)
		}
	}
}

func TestMapperRoundTrip(t *testing.T) {
	m := NewMapper(2200, 1000)
	for _, h := range []float64{1, 300, 777.5} {
		for _, y := range []float64{0, 1, 333.3, 999.99, 1000, 1500} {
			got := m.FromScreenY(m.ToScreenY(y, h), h)
			if math.Abs(got-y) > 1e-9 {
				t.Fatalf("round trip y=%v h=%v got %v", y, h, got)
			}
		}
		for _, py := range []float64{0, 10, h / 2, h} {
			if got := m.ToScreenY(m.FromScreenY(py, h), h); math.Abs(got-py) > 1e-9 {
				t.Fatalf("inverse round trip py=%v h=%v got %v", py, h, got)
			}
		}
	}
	for _, x := range []float64{0, 17, 2200} {
		if got := m.FromScreenX(m.ToScreenX(x, 640), 640); math.Abs(got-x) > 1e-9 {
			t.Fatalf("round trip x=%v got %v", x, got)
		}
	}
}

func TestLinearScale(t *testing.T) {
	s := NewLinear(0, 3, 0, 1030)
	if !almostEqual(s.Map(1), 1030.0/3) {
		t.Fatalf("Map(1) = %v", s.Map(1))
	}
	if !almostEqual(s.Invert(s.Map(2.5)), 2.5) {
		t.Fatalf("Invert did not round trip")
	}

	z := s.Rescale(2, -100)
	if !almostEqual(z.Map(0), -100) || !almostEqual(z.Map(3), 1960) {
		t.Fatalf("rescaled range wrong: %v %v", z.Map(0), z.Map(3))
	}
	if !almostEqual(z.Invert(z.Map(1.6)), 1.6) {
		t.Fatalf("rescaled invert did not round trip")
	}

	degenerate := NewLinear(5, 5, 0, 100)
	if degenerate.Map(5) != 50 {
		t.Fatalf("degenerate domain should map to midpoint, got %v", degenerate.Map(5))
	}
}

func TestBandScale(t *testing.T) {
	b := NewBand([]string{"A", "B"}, 0, 210, 0.1)
	// step = 210 / (2 - 0.1 + 0.2) = 100; start = (210 - 100*1.9)/2 = 10
	if !almostEqual(b.Step, 100) || !almostEqual(b.Start, 10) || !almostEqual(b.Bandwidth, 90) {
		t.Fatalf("unexpected band layout: %+v", b)
	}
	y, ok := b.Position("B")
	if !ok || !almostEqual(y, 110) {
		t.Fatalf("Position(B) = %v %v", y, ok)
	}
	if key, ok := b.Lookup(150); !ok || key != "B" {
		t.Fatalf("Lookup(150) = %q %v", key, ok)
	}
	if _, ok := b.Lookup(105); ok {
		t.Fatal("padding gap should not resolve to a band")
	}
	if _, ok := b.Position("C"); ok {
		t.Fatal("unknown key should not have a position")
	}
}

func TestIntegerTicks(t *testing.T) {
	tests := []struct {
		start, stop float64
		count       int
		want        []int
	}{
		{0, 100, 5, []int{0, 20, 40, 60, 80, 100}},
		{0, 10, 10, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{0, 3, 20, []int{0, 1, 2, 3}},
		{0, 0, 5, []int{0}},
	}
	for _, tc := range tests {
		got := IntegerTicks(tc.start, tc.stop, tc.count)
		if len(got) != len(tc.want) {
			t.Fatalf("IntegerTicks(%v,%v,%d) = %v, want %v", tc.start, tc.stop, tc.count, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("IntegerTicks(%v,%v,%d) = %v, want %v", tc.start, tc.stop, tc.count, got, tc.want)
			}
		}
	}
}
