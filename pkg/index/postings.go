// Package index holds the data model shared by the partial builder, the
// merger, the writer, and the query evaluator: postings, the dictionary
// entry shape, and the binary postings-file codec.
package index

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Posting is one (doc, term) pairing: the document's weighted term
// frequency and the positions at which the term's stem occurred.
// Positions are doc_id order-independent within a term's run; only the
// per-term slice order (doc_id ascending) is a contract.
type Posting struct {
	DocID     int32
	TF        float32
	Positions []int32
}

// ByteLen reports how many bytes this posting occupies in postings.bin:
// doc_id + tf + pos_count + one int32 per position.
func (p Posting) ByteLen() int64 {
	return 4 + 4 + 4 + 4*int64(len(p.Positions))
}

// DictEntry is one row of dictionary.csv: a term's document frequency
// and its byte range within postings.bin.
type DictEntry struct {
	Term   string
	DF     int
	Offset int64
	Length int64
}

// WritePostings serializes postings in order to w, little-endian, per
// the wire layout: doc_id, tf, pos_count, then pos_count positions.
// Returns the number of bytes written, for the caller to track offsets.
func WritePostings(w io.Writer, postings []Posting) (int64, error) {
	var written int64
	buf := make([]byte, 12)
	for _, p := range postings {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(p.DocID))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(p.TF))
		binary.LittleEndian.PutUint32(buf[8:12], uint32(len(p.Positions)))
		if _, err := w.Write(buf); err != nil {
			return written, fmt.Errorf("index: write posting header: %w", err)
		}
		written += 12

		posBuf := make([]byte, 4*len(p.Positions))
		for i, pos := range p.Positions {
			binary.LittleEndian.PutUint32(posBuf[4*i:4*i+4], uint32(pos))
		}
		if len(posBuf) > 0 {
			if _, err := w.Write(posBuf); err != nil {
				return written, fmt.Errorf("index: write posting positions: %w", err)
			}
			written += int64(len(posBuf))
		}
	}
	return written, nil
}

// ReadPostings deserializes exactly df postings from r, starting at the
// reader's current position. The caller is responsible for seeking r to
// a term's (offset, length) first; ReadPostings stops after df records
// regardless of how many bytes that consumed, and the caller should
// cross-check against length for corruption.
func ReadPostings(r io.Reader, df int) ([]Posting, error) {
	postings := make([]Posting, 0, df)
	header := make([]byte, 12)
	for i := 0; i < df; i++ {
		if _, err := io.ReadFull(r, header); err != nil {
			return nil, fmt.Errorf("index: read posting header: %w", err)
		}
		docID := int32(binary.LittleEndian.Uint32(header[0:4]))
		tf := math.Float32frombits(binary.LittleEndian.Uint32(header[4:8]))
		posCount := int32(binary.LittleEndian.Uint32(header[8:12]))

		positions := make([]int32, posCount)
		if posCount > 0 {
			posBuf := make([]byte, 4*posCount)
			if _, err := io.ReadFull(r, posBuf); err != nil {
				return nil, fmt.Errorf("index: read posting positions: %w", err)
			}
			for j := range positions {
				positions[j] = int32(binary.LittleEndian.Uint32(posBuf[4*j : 4*j+4]))
			}
		}

		postings = append(postings, Posting{DocID: docID, TF: tf, Positions: positions})
	}
	return postings, nil
}
