package memstore

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

type user struct {
	email        string
	passwordHash []byte
	record       twofactor.Record
}

// Store keeps users, one-time codes and trusted devices in memory.
//
// A transaction holds the store's single lock for its whole duration, so
// transactions are serial, and FOR UPDATE reads need no extra locking. A
// failed transaction restores the snapshot taken when it began.
type Store struct {
	mu      sync.Mutex
	users   map[uuid.UUID]user
	codes   map[uuid.UUID]otpcode.Code
	devices map[uuid.UUID]trusteddevice.Device
}

func New() *Store {
	return &Store{
		users:   make(map[uuid.UUID]user),
		codes:   make(map[uuid.UUID]otpcode.Code),
		devices: make(map[uuid.UUID]trusteddevice.Device),
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTx runs fn atomically. Calls made with the ctx passed to fn join
// the transaction; nested WithinTx calls do too.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// lock takes the store lock unless ctx already holds it through WithinTx.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users   map[uuid.UUID]user
	codes   map[uuid.UUID]otpcode.Code
	devices map[uuid.UUID]trusteddevice.Device
}

// Stored values are replaced, never mutated in place, so shallow map copies
// are enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:   maps.Clone(s.users),
		codes:   maps.Clone(s.codes),
		devices: maps.Clone(s.devices),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.codes = snap.codes
	s.devices = snap.devices
}

// CreateUser adds a user with two-factor disabled. passwordHash may be nil
// for accounts without a password.
func (s *Store) CreateUser(ctx context.Context, email string, passwordHash []byte) (uuid.UUID, error) {
	defer s.lock(ctx)()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.email == email {
			return uuid.Nil, ErrDuplicateEmail
		}
	}

	id := uuid.New()
	s.users[id] = user{
		email:        email,
		passwordHash: append([]byte(nil), passwordHash...),
		record:       twofactor.RecordOf(twofactor.Disabled{}),
	}
	return id, nil
}
