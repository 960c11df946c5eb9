package persist

import (
	"testing"

	"github.com/hailam/hexvc/internal/hexcell"
)

func TestRecordMarshalRoundTrip(t *testing.T) {
	r := Record{
		Winner:              hexcell.White,
		NumMoves:            17,
		Proof:               hexcell.Of(hexcell.InteriorCell(11, 1, 1), hexcell.InteriorCell(11, 2, 2)),
		Black:               hexcell.Of(hexcell.North, hexcell.South),
		White:               hexcell.Of(hexcell.East, hexcell.West),
		Hash:                0xdeadbeefcafef00d,
		Transposition:       true,
		MirrorTransposition: false,
	}
	buf := r.Marshal()
	if len(buf) != recordSize {
		t.Fatalf("Marshal produced %d bytes, want %d", len(buf), recordSize)
	}
	got, err := Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got != r {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
}

func TestRecordMarshalBlackWinnerAndNoFlags(t *testing.T) {
	r := Record{Winner: hexcell.Black, NumMoves: 3, Hash: 42}
	buf := r.Marshal()
	got, err := Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got.Winner != hexcell.Black || got.Transposition || got.MirrorTransposition {
		t.Errorf("got %+v, want Black winner with no flags set", got)
	}
	if got.NumMoves != 3 || got.Hash != 42 {
		t.Errorf("got NumMoves=%d Hash=%d, want 3, 42", got.NumMoves, got.Hash)
	}
}

func TestUnmarshalRejectsWrongLength(t *testing.T) {
	if _, err := Unmarshal([]byte{1, 2, 3}); err == nil {
		t.Error("expected an error for a buffer of the wrong size")
	}
}
