// Package rootstore persists committed accumulator root sets, one per
// block height, in a leveldb database.  The proof server loads the
// set for its best height and verifies incoming proofs against it.
package rootstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/larkmoor/forestproof/accumulator"
	"github.com/larkmoor/forestproof/common"
)

var (
	// ErrNoState means no root set is stored at the requested height.
	ErrNoState = errors.New("No root set stored")
)

func errNoState(height int32) error {
	return fmt.Errorf("%w at height %d", ErrNoState, height)
}

// RootSet is everything a verifier needs against one accumulator
// state: the leaf count and the roots, in ascending row order.
type RootSet struct {
	NumLeaves uint64
	Roots     []accumulator.Hash
}

// Serialize writes a root set as the leaf count, a root count, then
// the roots.
func (rs *RootSet) Serialize(w io.Writer) error {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	err := freeBytes.PutUint64(w, binary.BigEndian, rs.NumLeaves)
	if err != nil {
		return err
	}
	err = freeBytes.PutUint32(w, binary.BigEndian, uint32(len(rs.Roots)))
	if err != nil {
		return err
	}
	for _, root := range rs.Roots {
		_, err = w.Write(root[:])
		if err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a root set back.
func (rs *RootSet) Deserialize(r io.Reader) error {
	freeBytes := common.NewFreeBytes()
	defer freeBytes.Free()

	var err error
	rs.NumLeaves, err = freeBytes.Uint64(r, binary.BigEndian)
	if err != nil {
		return err
	}
	numRoots, err := freeBytes.Uint32(r, binary.BigEndian)
	if err != nil {
		return err
	}
	// a forest can't have more roots than bits in the leaf count
	if numRoots > 64 {
		return fmt.Errorf("%d roots - too many", numRoots)
	}
	rs.Roots = make([]accumulator.Hash, numRoots)
	for i := range rs.Roots {
		_, err = io.ReadFull(r, rs.Roots[i][:])
		if err != nil {
			return err
		}
	}
	return nil
}

// db keys: 'B' -> best height, 'R' + 4 byte big endian height -> the
// serialized root set for that height.
var bestKey = []byte("B")

func rootsKey(height int32) []byte {
	key := make([]byte, 5)
	key[0] = 'R'
	binary.BigEndian.PutUint32(key[1:], uint32(height))
	return key
}

// Store is a leveldb-backed collection of committed root sets.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	o := new(opt.Options)
	o.CompactionTableSizeMultiplier = 8
	db, err := leveldb.OpenFile(path, o)
	if err != nil {
		return nil, err
	}
	log.Debugf("opened root store at %s", path)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put commits a root set at the given height and moves the best
// height forward, in a single batch.
func (s *Store) Put(height int32, rs RootSet) error {
	var buf bytes.Buffer
	err := rs.Serialize(&buf)
	if err != nil {
		return err
	}

	heightBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(heightBytes, uint32(height))

	var batch leveldb.Batch
	batch.Put(rootsKey(height), buf.Bytes())
	batch.Put(bestKey, heightBytes)
	err = s.db.Write(&batch, nil)
	if err != nil {
		return err
	}
	log.Debugf("committed %d roots for %d leaves at height %d",
		len(rs.Roots), rs.NumLeaves, height)
	return nil
}

// Get returns the root set stored at the given height.
func (s *Store) Get(height int32) (RootSet, error) {
	var rs RootSet
	raw, err := s.db.Get(rootsKey(height), nil)
	if err == leveldb.ErrNotFound {
		return rs, errNoState(height)
	}
	if err != nil {
		return rs, err
	}
	err = rs.Deserialize(bytes.NewReader(raw))
	return rs, err
}

// Best returns the latest committed height and its root set.
func (s *Store) Best() (int32, RootSet, error) {
	raw, err := s.db.Get(bestKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, RootSet{}, ErrNoState
	}
	if err != nil {
		return 0, RootSet{}, err
	}
	height := int32(binary.BigEndian.Uint32(raw))
	rs, err := s.Get(height)
	return height, rs, err
}
