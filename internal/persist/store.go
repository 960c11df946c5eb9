package persist

import (
	"github.com/dgraph-io/badger/v4"
)

// Store wraps BadgerDB for the solved-state database, keyed by packed
// Board-ID.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) the database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores rec under boardID, overwriting the existing entry only
// when none exists or the existing one's NumMoves is not already
// smaller: updates overwrite only when the new record has an
// equal-or-smaller move count.
func (s *Store) Put(boardID []byte, rec Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(boardID)
		if err == nil {
			var existing Record
			err = item.Value(func(val []byte) error {
				var uerr error
				existing, uerr = Unmarshal(val)
				return uerr
			})
			if err != nil {
				return err
			}
			if existing.NumMoves < rec.NumMoves {
				return nil
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(boardID, rec.Marshal())
	})
}

// Lookup tries boardID, then mirrorID if given, setting
// MirrorTransposition when the mirror image is what hit.
func (s *Store) Lookup(boardID, mirrorID []byte) (Record, bool) {
	if rec, ok := s.get(boardID); ok {
		return rec, true
	}
	if mirrorID == nil {
		return Record{}, false
	}
	rec, ok := s.get(mirrorID)
	if !ok {
		return Record{}, false
	}
	rec.MirrorTransposition = true
	return rec, true
}

func (s *Store) get(key []byte) (Record, bool) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var uerr error
			rec, uerr = Unmarshal(val)
			return uerr
		})
	})
	if err != nil {
		return Record{}, false
	}
	return rec, true
}
