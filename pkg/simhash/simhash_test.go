package simhash

import "testing"

func TestComputeDeterministic(t *testing.T) {
	freq := map[string]float64{"alpha": 3.0, "beta": 1.0, "gamma": 2.0}
	a := Compute(freq)
	b := Compute(freq)
	if a != b {
		t.Fatalf("Compute is not deterministic: %d != %d", a, b)
	}
}

func TestComputeEmptyBag(t *testing.T) {
	// All accumulators stay at 0, and ties resolve to bit 1.
	got := Compute(map[string]float64{})
	want := uint16(0xFFFF)
	if got != want {
		t.Errorf("Compute(empty) = %016b, want %016b", got, want)
	}
}

func TestHammingDistance(t *testing.T) {
	cases := []struct {
		a, b uint16
		want int
	}{
		{0x0000, 0x0000, 0},
		{0x0000, 0xFFFF, 16},
		{0b1010, 0b1000, 1},
		{0b1111, 0b0000, 4},
	}
	for _, c := range cases {
		if got := HammingDistance(c.a, c.b); got != c.want {
			t.Errorf("HammingDistance(%b, %b) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSimilar(t *testing.T) {
	cases := []struct {
		name string
		a, b uint16
		want bool
	}{
		{"identical", 0b0000000000000000, 0b0000000000000000, true},
		{"one bit differs", 0b0000000000000000, 0b0000000000000001, true},
		{"two bits differ", 0b0000000000000000, 0b0000000000000011, false},
		{"all bits differ", 0b0000000000000000, 0xFFFF, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Similar(c.a, c.b); got != c.want {
				t.Errorf("Similar(%016b, %016b) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestFilterAdmitsFirstRejectsDuplicate(t *testing.T) {
	f := NewFilter()
	fp := Compute(map[string]float64{"alpha": 1.0, "beta": 1.0})

	if !f.Admit(fp) {
		t.Fatalf("first Admit of a fresh fingerprint should succeed")
	}
	if f.Admit(fp) {
		t.Fatalf("second Admit of the same fingerprint should be rejected")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestFilterAdmitsDistinctFingerprints(t *testing.T) {
	f := NewFilter()
	a := Compute(map[string]float64{"alpha": 5.0})
	b := Compute(map[string]float64{"zephyr": 5.0, "quokka": 3.0, "fjord": 2.0})

	if !f.Admit(a) {
		t.Fatalf("Admit(a) should succeed")
	}
	if !f.Admit(b) {
		t.Fatalf("Admit(b) should succeed for a dissimilar fingerprint")
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
}
