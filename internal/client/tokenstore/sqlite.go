package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/practicum/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/practicum/internal/common"
	"github.com/dmitrijs2005/practicum/internal/cryptox"
)

// saltKey holds the Argon2 salt of the sealing key. It survives Clear.
const saltKey = "store_salt"

// SQLiteStore keeps credentials in the metadata table. When built with a
// passphrase every slot is sealed with AES-GCM before it is written.
type SQLiteStore struct {
	db     *sql.DB
	repo   metadata.Repository
	sealer *cryptox.Sealer
}

// NewSQLiteStore binds a store to an already migrated database. An empty
// passphrase stores values in the clear.
func NewSQLiteStore(ctx context.Context, db *sql.DB, passphrase []byte) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
	if len(passphrase) == 0 {
		return s, nil
	}

	salt, err := s.repo.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		if salt, err = cryptox.NewSalt(); err != nil {
			return nil, err
		}
		if err := s.repo.Set(ctx, saltKey, salt); err != nil {
			return nil, err
		}
	}

	sealer, err := cryptox.NewSealer(cryptox.DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	s.sealer = sealer
	return s, nil
}

func (s *SQLiteStore) read(ctx context.Context, key string) ([]byte, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil || v == nil {
		return nil, err
	}
	if s.sealer == nil {
		return v, nil
	}
	plain, err := s.sealer.Open(key, v)
	if err != nil {
		return nil, fmt.Errorf("unseal %s: %w", key, err)
	}
	return plain, nil
}

func (s *SQLiteStore) write(ctx context.Context, repo metadata.Repository, key string, value []byte) error {
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(key, value)
		if err != nil {
			return err
		}
		value = sealed
	}
	return repo.Set(ctx, key, value)
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	v, err := s.read(ctx, common.AccessTokenKey)
	return string(v), err
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.read(ctx, common.RefreshTokenKey)
	return string(v), err
}

func (s *SQLiteStore) SetTokens(ctx context.Context, access, refresh string) error {
	return s.inTx(ctx, func(repo metadata.Repository) error {
		if err := s.write(ctx, repo, common.AccessTokenKey, []byte(access)); err != nil {
			return err
		}
		if refresh == "" {
			return nil
		}
		return s.write(ctx, repo, common.RefreshTokenKey, []byte(refresh))
	})
}

// inTx runs fn on a repository bound to one transaction, so the slots it
// writes land together or not at all. A panic in fn rolls back and is
// rethrown.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(repo metadata.Repository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin slot update: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = errors.Join(err, fmt.Errorf("rollback slot update: %w", rerr))
			}
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit slot update: %w", cerr)
		}
	}()

	return fn(metadata.NewSQLiteRepository(tx))
}

func (s *SQLiteStore) User(ctx context.Context) ([]byte, error) {
	return s.read(ctx, common.UserKey)
}

func (s *SQLiteStore) SetUser(ctx context.Context, user []byte) error {
	return s.write(ctx, s.repo, common.UserKey, user)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey, common.UserKey)
}
