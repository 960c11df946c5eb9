package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/hexvc/internal/hexcell"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "hexvc-persist-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePutAndLookup(t *testing.T) {
	store := openTestStore(t)
	boardID := []byte{0x01, 0x02, 0x03}
	rec := Record{Winner: hexcell.Black, NumMoves: 5, Hash: 99}

	if err := store.Put(boardID, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := store.Lookup(boardID, nil)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got.Winner != rec.Winner || got.NumMoves != rec.NumMoves {
		t.Errorf("got %+v, want %+v", got, rec)
	}
}

func TestStoreLookupMiss(t *testing.T) {
	store := openTestStore(t)
	if _, ok := store.Lookup([]byte{0xff}, nil); ok {
		t.Error("expected a miss for a key never Put")
	}
}

func TestStoreLookupFallsBackToMirror(t *testing.T) {
	store := openTestStore(t)
	mirrorID := []byte{0xaa, 0xbb}
	rec := Record{Winner: hexcell.White, NumMoves: 8}
	if err := store.Put(mirrorID, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := store.Lookup([]byte{0x99, 0x99}, mirrorID)
	if !ok {
		t.Fatal("expected a hit via the mirror key")
	}
	if !got.MirrorTransposition {
		t.Error("a mirror-key hit should set MirrorTransposition")
	}
}

func TestStorePutDoesNotOvewriteWithLargerNumMoves(t *testing.T) {
	store := openTestStore(t)
	boardID := []byte{0x10}
	short := Record{Winner: hexcell.Black, NumMoves: 3}
	long := Record{Winner: hexcell.White, NumMoves: 9}

	if err := store.Put(boardID, short); err != nil {
		t.Fatalf("Put short: %v", err)
	}
	if err := store.Put(boardID, long); err != nil {
		t.Fatalf("Put long: %v", err)
	}

	got, ok := store.Lookup(boardID, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.NumMoves != short.NumMoves || got.Winner != short.Winner {
		t.Errorf("a longer-proof record should not overwrite a shorter one, got %+v", got)
	}
}

func TestStorePutOverwritesWithSmallerOrEqualNumMoves(t *testing.T) {
	store := openTestStore(t)
	boardID := []byte{0x11}
	long := Record{Winner: hexcell.Black, NumMoves: 9}
	short := Record{Winner: hexcell.White, NumMoves: 3}

	if err := store.Put(boardID, long); err != nil {
		t.Fatalf("Put long: %v", err)
	}
	if err := store.Put(boardID, short); err != nil {
		t.Fatalf("Put short: %v", err)
	}

	got, ok := store.Lookup(boardID, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.NumMoves != short.NumMoves || got.Winner != short.Winner {
		t.Errorf("a shorter-proof record should overwrite a longer one, got %+v", got)
	}
}
