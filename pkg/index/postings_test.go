package index

import (
	"bytes"
	"testing"
)

func TestPostingsRoundTrip(t *testing.T) {
	want := []Posting{
		{DocID: 0, TF: 4.0, Positions: []int32{0, 1}},
		{DocID: 2, TF: 1.0, Positions: []int32{5}},
		{DocID: 7, TF: 0.5, Positions: []int32{}},
	}

	var buf bytes.Buffer
	n, err := WritePostings(&buf, want)
	if err != nil {
		t.Fatalf("WritePostings returned error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WritePostings returned %d, buffer holds %d bytes", n, buf.Len())
	}

	got, err := ReadPostings(&buf, len(want))
	if err != nil {
		t.Fatalf("ReadPostings returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadPostings returned %d postings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].DocID != want[i].DocID {
			t.Errorf("postings[%d].DocID = %d, want %d", i, got[i].DocID, want[i].DocID)
		}
		if got[i].TF != want[i].TF {
			t.Errorf("postings[%d].TF = %v, want %v", i, got[i].TF, want[i].TF)
		}
		if len(got[i].Positions) != len(want[i].Positions) {
			t.Errorf("postings[%d].Positions = %v, want %v", i, got[i].Positions, want[i].Positions)
			continue
		}
		for j := range want[i].Positions {
			if got[i].Positions[j] != want[i].Positions[j] {
				t.Errorf("postings[%d].Positions[%d] = %d, want %d", i, j, got[i].Positions[j], want[i].Positions[j])
			}
		}
	}
}

func TestByteLen(t *testing.T) {
	p := Posting{DocID: 1, TF: 1.0, Positions: []int32{0, 1, 2}}
	if got, want := p.ByteLen(), int64(12+12); got != want {
		t.Errorf("ByteLen() = %d, want %d", got, want)
	}
}

func TestFinishNorm(t *testing.T) {
	sumSquares := map[int32]float64{}
	AccumulateNorm(sumSquares, 0, 3.0)
	AccumulateNorm(sumSquares, 0, 1.0)

	norms := FinishNorm(sumSquares)
	// (1+ln3)^2 + (1+ln1)^2 = (2.0986...)^2 + 1 = 4.4043... + 1 = 5.4043...
	want := 2.3247
	if got := norms[0]; got < want-0.01 || got > want+0.01 {
		t.Errorf("norms[0] = %v, want ~%v", got, want)
	}
}
