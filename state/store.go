package state

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/codec"
	"github.com/trollup/go-trollup/common/types"
)

var (
	accountPrefix = []byte("a/")
	metaKey       = []byte("m/meta")
)

// Meta is the progress of the sequencer stored next to the accounts.
type Meta struct {
	AppliedRoot types.Hash32
	ProvenRoot  types.Hash32
	Applied     uint64
	Proven      uint64
	Batches     uint64
	Diverged    bool
}

// EncodeScale implements scale codec interface.
func (m *Meta) EncodeScale(enc *scale.Encoder) (total int, err error) {
	for _, h := range []*types.Hash32{&m.AppliedRoot, &m.ProvenRoot} {
		n, err := h.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range []uint64{m.Applied, m.Proven, m.Batches} {
		n, err := scale.EncodeCompact64(enc, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	var diverged byte
	if m.Diverged {
		diverged = 1
	}
	n, err := scale.EncodeByte(enc, diverged)
	if err != nil {
		return total, err
	}
	return total + n, nil
}

// DecodeScale implements scale codec interface.
func (m *Meta) DecodeScale(dec *scale.Decoder) (total int, err error) {
	for _, h := range []*types.Hash32{&m.AppliedRoot, &m.ProvenRoot} {
		n, err := h.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range []*uint64{&m.Applied, &m.Proven, &m.Batches} {
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		*v = field
	}
	field, n, err := scale.DecodeByte(dec)
	if err != nil {
		return total, err
	}
	m.Diverged = field != 0
	return total + n, nil
}

// StoreOpt modifies Store.
type StoreOpt func(*Store)

// WithStoreLogger sets the logger.
func WithStoreLogger(logger *zap.Logger) StoreOpt {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store persists the authoritative snapshot in leveldb.
type Store struct {
	logger *zap.Logger
	db     *leveldb.DB
}

// Open opens or creates the store at path.
func Open(path string, opts ...StoreOpt) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open state db at %s: %w", path, err)
	}
	return newStore(db, opts...), nil
}

// OpenInMemory creates a store that is lost on Close.
func OpenInMemory(opts ...StoreOpt) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory state db: %w", err)
	}
	return newStore(db, opts...), nil
}

func newStore(db *leveldb.DB, opts ...StoreOpt) *Store {
	s := &Store{logger: zap.NewNop(), db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func accountKey(addr types.Address) []byte {
	key := make([]byte, 0, len(accountPrefix)+types.AddressLength)
	key = append(key, accountPrefix...)
	return append(key, addr[:]...)
}

// Load reads the stored state. Meta is nil if nothing was committed yet.
func (s *Store) Load() (*Snapshot, *Meta, error) {
	var meta *Meta
	buf, err := s.db.Get(metaKey, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
	case err != nil:
		return nil, nil, fmt.Errorf("read meta: %w", err)
	default:
		meta = &Meta{}
		if err := codec.Decode(buf, meta); err != nil {
			return nil, nil, fmt.Errorf("decode meta: %w", err)
		}
	}

	var accounts []types.Account
	it := s.db.NewIterator(util.BytesPrefix(accountPrefix), nil)
	defer it.Release()
	for it.Next() {
		var acc types.Account
		if err := codec.Decode(it.Value(), &acc); err != nil {
			return nil, nil, fmt.Errorf("decode account %x: %w", it.Key(), err)
		}
		accounts = append(accounts, acc)
	}
	if err := it.Error(); err != nil {
		return nil, nil, fmt.Errorf("iterate accounts: %w", err)
	}
	snap := NewSnapshot(accounts...)
	if meta != nil && snap.Root() != meta.AppliedRoot {
		return nil, nil, fmt.Errorf("stored state root %s does not match recorded root %s",
			snap.Root(), meta.AppliedRoot)
	}
	s.logger.Info("loaded state",
		zap.Int("accounts", len(accounts)),
		zap.Stringer("root", snap.Root()),
	)
	return snap, meta, nil
}

// Commit writes the accounts at touched addresses as they are in snap, together with meta,
// in one atomic batch.
func (s *Store) Commit(snap *Snapshot, touched []types.Address, meta *Meta) error {
	batch := new(leveldb.Batch)
	for _, addr := range touched {
		acc := snap.Get(addr)
		if acc.IsEmpty() {
			batch.Delete(accountKey(addr))
			continue
		}
		buf, err := codec.Encode(&acc)
		if err != nil {
			return fmt.Errorf("encode account %s: %w", addr, err)
		}
		batch.Put(accountKey(addr), buf)
	}
	buf, err := codec.Encode(meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	batch.Put(metaKey, buf)
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// SaveMeta overwrites the progress record only.
func (s *Store) SaveMeta(meta *Meta) error {
	buf, err := codec.Encode(meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := s.db.Put(metaKey, buf, nil); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
