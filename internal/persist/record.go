// Package persist implements the BadgerDB-backed solved-state database
// keyed by packed Board-ID, composed with an in-memory transposition-table
// probe behind one Prober interface.
package persist

import (
	"encoding/binary"
	"fmt"

	"github.com/hailam/hexvc/internal/hexcell"
)

// Record is one solved-state entry: the proved winner, the
// number of moves played to reach it, the winning proof, the position's
// stone sets and Zobrist hash, and whether the hit came via an exact
// key or its 180-rotation/diagonal-mirror transposition.
type Record struct {
	Winner              hexcell.Colour
	NumMoves            int
	Proof               hexcell.Set
	Black               hexcell.Set
	White               hexcell.Set
	Hash                uint64
	Transposition       bool
	MirrorTransposition bool
}

const recordSize = 1 + 2 + 8 + 16*3

// Marshal encodes r to its fixed-size on-disk form.
func (r Record) Marshal() []byte {
	buf := make([]byte, recordSize)
	var flags byte
	if r.Winner == hexcell.White {
		flags |= 1
	}
	if r.Transposition {
		flags |= 2
	}
	if r.MirrorTransposition {
		flags |= 4
	}
	buf[0] = flags
	binary.BigEndian.PutUint16(buf[1:3], uint16(r.NumMoves))
	binary.BigEndian.PutUint64(buf[3:11], r.Hash)
	putSet := func(off int, s hexcell.Set) {
		lo, hi := s.Words()
		binary.BigEndian.PutUint64(buf[off:off+8], lo)
		binary.BigEndian.PutUint64(buf[off+8:off+16], hi)
	}
	putSet(11, r.Proof)
	putSet(27, r.Black)
	putSet(43, r.White)
	return buf
}

// Unmarshal decodes buf back into a Record.
func Unmarshal(buf []byte) (Record, error) {
	if len(buf) != recordSize {
		return Record{}, fmt.Errorf("persist: record has %d bytes, want %d", len(buf), recordSize)
	}
	var r Record
	flags := buf[0]
	if flags&1 != 0 {
		r.Winner = hexcell.White
	} else {
		r.Winner = hexcell.Black
	}
	r.Transposition = flags&2 != 0
	r.MirrorTransposition = flags&4 != 0
	r.NumMoves = int(binary.BigEndian.Uint16(buf[1:3]))
	r.Hash = binary.BigEndian.Uint64(buf[3:11])
	getSet := func(off int) hexcell.Set {
		lo := binary.BigEndian.Uint64(buf[off : off+8])
		hi := binary.BigEndian.Uint64(buf[off+8 : off+16])
		return hexcell.FromWords(lo, hi)
	}
	r.Proof = getSet(11)
	r.Black = getSet(27)
	r.White = getSet(43)
	return r, nil
}
