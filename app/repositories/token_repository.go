package repositories

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type tokenRecord struct {
	UserID   uint      `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// BadgerTokenRepository implements TokenRepository using BadgerDB. Entries
// expire through badger's TTL, so a lookup after expiry is a miss.
type BadgerTokenRepository struct {
	db    *badger.DB
	owned bool
}

// NewBadgerTokenRepository wraps an already opened badger DB.
func NewBadgerTokenRepository(db *badger.DB) *BadgerTokenRepository {
	return &BadgerTokenRepository{db: db}
}

// OpenBadgerTokenRepository opens a badger DB at path, or an in-memory one
// when path is empty. The returned repository owns the DB and closes it.
func OpenBadgerTokenRepository(path string) (*BadgerTokenRepository, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token store directory: %v", err)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerTokenRepository{db: db, owned: true}, nil
}

// Close closes the underlying DB if this repository opened it.
func (r *BadgerTokenRepository) Close() error {
	if !r.owned {
		return nil
	}
	return r.db.Close()
}

// maxConflictRetries bounds how often GetOrCreate retries a transaction
// that lost a write conflict.
const maxConflictRetries = 64

// Save stores token for userID and makes it the user's current token.
func (r *BadgerTokenRepository) Save(token string, userID uint, ttl time.Duration) error {
	record := tokenRecord{UserID: userID, IssuedAt: time.Now().UTC()}
	return r.db.Update(func(txn *badger.Txn) error {
		return setToken(txn, token, record, ttl)
	})
}

// GetOrCreate returns the user's live token, or stores candidate when there
// is none. A reused token gets a fresh TTL.
func (r *BadgerTokenRepository) GetOrCreate(userID uint, candidate string, ttl time.Duration) (string, error) {
	var token string
	for attempt := 0; ; attempt++ {
		err := r.db.Update(func(txn *badger.Txn) error {
			existing, record, err := currentToken(txn, userID)
			if errors.Is(err, ErrNotFound) {
				token = candidate
				return setToken(txn, candidate, tokenRecord{UserID: userID, IssuedAt: time.Now().UTC()}, ttl)
			}
			if err != nil {
				return err
			}
			token = existing
			return setToken(txn, existing, record, ttl)
		})
		if errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return "", err
		}
		return token, nil
	}
}

func setToken(txn *badger.Txn, token string, record tokenRecord, ttl time.Duration) error {
	data, err := marshalEntity(record)
	if err != nil {
		return err
	}
	tokenEntry := badger.NewEntry(tokenKey(token), data)
	userEntry := badger.NewEntry(userTokenKey(record.UserID), []byte(token))
	if ttl > 0 {
		tokenEntry = tokenEntry.WithTTL(ttl)
		userEntry = userEntry.WithTTL(ttl)
	}
	if err := txn.SetEntry(tokenEntry); err != nil {
		return err
	}
	return txn.SetEntry(userEntry)
}

// currentToken reads the user's token pointer and the record it points at.
func currentToken(txn *badger.Txn, userID uint) (string, tokenRecord, error) {
	var record tokenRecord
	item, err := txn.Get(userTokenKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", record, ErrNotFound
	}
	if err != nil {
		return "", record, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", record, err
	}
	token := string(val)

	// The user pointer can outlive a token deleted by Delete.
	item, err = txn.Get(tokenKey(token))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", record, ErrNotFound
	}
	if err != nil {
		return "", record, err
	}
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &record)
	}); err != nil {
		return "", record, err
	}
	return token, record, nil
}

// Lookup resolves a token to its user ID
func (r *BadgerTokenRepository) Lookup(token string) (uint, error) {
	var record tokenRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &record)
		})
	})
	if err != nil {
		return 0, err
	}
	return record.UserID, nil
}

// TokenForUser returns the user's live token
func (r *BadgerTokenRepository) TokenForUser(userID uint) (string, error) {
	var token string
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		token, _, err = currentToken(txn, userID)
		return err
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Delete revokes a token
func (r *BadgerTokenRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var record tokenRecord
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &record)
		}); err != nil {
			return err
		}

		if err := txn.Delete(tokenKey(token)); err != nil {
			return err
		}

		current, err := txn.Get(userTokenKey(record.UserID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := current.ValueCopy(nil)
		if err != nil {
			return err
		}
		if string(val) == token {
			return txn.Delete(userTokenKey(record.UserID))
		}
		return nil
	})
}
