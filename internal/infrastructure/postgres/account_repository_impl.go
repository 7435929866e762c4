package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// mapWriteError turns unique index violations into repository sentinels.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "ux_accounts_login":
			return repository.ErrDuplicateLogin
		case "ux_accounts_email":
			return repository.ErrDuplicateEmail
		}
	}
	return err
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	rec := toRecord(a)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO accounts (login, email, password_hash, first_name, last_name, image_url, lang_key,
				activated, activation_key, reset_key, reset_requested_at,
				created_by, created_at, last_modified_by, last_modified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id::text, version, created_at
		`, rec.Login, rec.Email, rec.PasswordHash, rec.FirstName, rec.LastName, rec.ImageURL, rec.LangKey,
			rec.Activated, rec.ActivationKey, rec.ResetKey, rec.ResetRequestedAt,
			rec.CreatedBy, rec.CreatedAt, rec.LastModifiedBy, rec.LastModifiedAt)
		if err := row.Scan(&a.ID, &a.Version, &a.CreatedAt); err != nil {
			return mapWriteError(err)
		}
		return insertRoles(ctx, tx, a.ID, a.Roles)
	})
}

func insertRoles(ctx context.Context, tx pgx.Tx, accountID string, roles []string) error {
	for _, role := range roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO account_roles (account_id, role) VALUES ($1::uuid, $2)
			ON CONFLICT (account_id, role) DO NOTHING
		`, accountID, role); err != nil {
			return fmt.Errorf("grant role %s: %w", role, err)
		}
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	rec := toRecord(a)
	var version int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE accounts
			SET login = $1, email = $2, password_hash = $3, first_name = $4, last_name = $5, image_url = $6,
				lang_key = $7, activated = $8, activation_key = $9, reset_key = $10, reset_requested_at = $11,
				last_modified_by = $12, last_modified_at = $13, version = version + 1
			WHERE id = $14::uuid AND version = $15
			RETURNING version
		`, rec.Login, rec.Email, rec.PasswordHash, rec.FirstName, rec.LastName, rec.ImageURL,
			rec.LangKey, rec.Activated, rec.ActivationKey, rec.ResetKey, rec.ResetRequestedAt,
			rec.LastModifiedBy, rec.LastModifiedAt, rec.ID, rec.Version).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if qErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid)`, rec.ID).Scan(&exists); qErr != nil {
				return qErr
			}
			if !exists {
				return repository.ErrNotFound
			}
			return repository.ErrVersionConflict
		}
		if err != nil {
			return mapWriteError(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM account_roles WHERE account_id = $1::uuid`, rec.ID); err != nil {
			return err
		}
		return insertRoles(ctx, tx, rec.ID, rec.Roles)
	})
	if err != nil {
		return err
	}
	a.Version = version
	return nil
}

func (r *AccountRepository) DeletePending(ctx context.Context, id string, version int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM accounts WHERE id = $1::uuid AND version = $2 AND NOT activated
	`, id, version)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrVersionConflict
}

func (r *AccountRepository) findOne(ctx context.Context, where string, arg any) (*entity.Account, error) {
	var rec accountRecord
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE `+where, arg)
	if err := row.Scan(rec.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return toAccount(rec), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, `a.id = $1::uuid`, id)
}

func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*entity.Account, error) {
	return r.findOne(ctx, `lower(a.login) = lower($1)`, login)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `lower(a.email) = lower($1)`, email)
}

func (r *AccountRepository) FindByActivationKey(ctx context.Context, key string) (*entity.Account, error) {
	return r.findOne(ctx, `a.activation_key = $1`, key)
}

func (r *AccountRepository) FindByResetKey(ctx context.Context, key string) (*entity.Account, error) {
	return r.findOne(ctx, `a.reset_key = $1`, key)
}

func (r *AccountRepository) FindCredentials(ctx context.Context, identifier string) (*entity.Credentials, error) {
	var rec credentialsRecord
	err := r.pool.QueryRow(ctx, `
		SELECT `+credentialsColumns+`
		FROM accounts a
		WHERE lower(a.login) = lower($1) OR lower(a.email) = lower($1)
		ORDER BY (lower(a.login) = lower($1)) DESC
		LIMIT 1
	`, identifier).Scan(&rec.ID, &rec.Login, &rec.PasswordHash, &rec.Activated, &rec.Roles)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toCredentials(rec), nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
