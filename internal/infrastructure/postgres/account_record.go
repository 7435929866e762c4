package postgres

import (
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// accountRecord mirrors one accounts row plus its aggregated roles.
type accountRecord struct {
	ID               string
	Login            string
	Email            string
	PasswordHash     string
	FirstName        *string
	LastName         *string
	ImageURL         *string
	LangKey          string
	Activated        bool
	ActivationKey    *string
	ResetKey         *string
	ResetRequestedAt *time.Time
	CreatedBy        string
	CreatedAt        time.Time
	LastModifiedBy   *string
	LastModifiedAt   *time.Time
	Version          int64
	Roles            []string
}

const accountColumns = `a.id::text, a.login, a.email, a.password_hash, a.first_name, a.last_name, a.image_url,
	a.lang_key, a.activated, a.activation_key, a.reset_key, a.reset_requested_at,
	a.created_by, a.created_at, a.last_modified_by, a.last_modified_at, a.version,
	COALESCE((SELECT array_agg(r.role ORDER BY r.role) FROM account_roles r WHERE r.account_id = a.id), '{}')`

func (rec *accountRecord) scanTargets() []any {
	return []any{
		&rec.ID, &rec.Login, &rec.Email, &rec.PasswordHash, &rec.FirstName, &rec.LastName, &rec.ImageURL,
		&rec.LangKey, &rec.Activated, &rec.ActivationKey, &rec.ResetKey, &rec.ResetRequestedAt,
		&rec.CreatedBy, &rec.CreatedAt, &rec.LastModifiedBy, &rec.LastModifiedAt, &rec.Version,
		&rec.Roles,
	}
}

// toAccount converts a stored row into the domain aggregate.
func toAccount(rec accountRecord) *entity.Account {
	a := &entity.Account{
		ID:           rec.ID,
		Login:        rec.Login,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		FirstName:    deref(rec.FirstName),
		LastName:     deref(rec.LastName),
		ImageURL:     deref(rec.ImageURL),
		LangKey:      rec.LangKey,
		Roles:        rec.Roles,
		CreatedBy:    rec.CreatedBy,
		CreatedAt:    rec.CreatedAt,
		Version:      rec.Version,
	}
	if rec.Activated {
		a.Status = entity.Activated()
	} else {
		a.Status = entity.Pending(deref(rec.ActivationKey))
	}
	if rec.ResetKey != nil && rec.ResetRequestedAt != nil {
		a.Reset = &entity.PasswordReset{Key: *rec.ResetKey, RequestedAt: *rec.ResetRequestedAt}
	}
	a.LastModifiedBy = deref(rec.LastModifiedBy)
	if rec.LastModifiedAt != nil {
		a.LastModifiedAt = *rec.LastModifiedAt
	}
	return a
}

// toRecord is the inverse of toAccount; roles are written separately.
func toRecord(a *entity.Account) accountRecord {
	rec := accountRecord{
		ID:             a.ID,
		Login:          a.Login,
		Email:          a.Email,
		PasswordHash:   a.PasswordHash,
		FirstName:      nullable(a.FirstName),
		LastName:       nullable(a.LastName),
		ImageURL:       nullable(a.ImageURL),
		LangKey:        a.LangKey,
		Activated:      a.Activated(),
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
		LastModifiedBy: nullable(a.LastModifiedBy),
		Version:        a.Version,
		Roles:          a.Roles,
	}
	if key, ok := a.Status.ActivationKey(); ok {
		rec.ActivationKey = nullable(key)
	}
	if a.Reset != nil {
		key, at := a.Reset.Key, a.Reset.RequestedAt
		rec.ResetKey, rec.ResetRequestedAt = &key, &at
	}
	if !a.LastModifiedAt.IsZero() {
		t := a.LastModifiedAt
		rec.LastModifiedAt = &t
	}
	return rec
}

// credentialsRecord is the narrow row read on authentication.
type credentialsRecord struct {
	ID           string
	Login        string
	PasswordHash string
	Activated    bool
	Roles        []string
}

const credentialsColumns = `a.id::text, a.login, a.password_hash, a.activated,
	COALESCE((SELECT array_agg(r.role ORDER BY r.role) FROM account_roles r WHERE r.account_id = a.id), '{}')`

func toCredentials(rec credentialsRecord) *entity.Credentials {
	return &entity.Credentials{
		AccountID:    rec.ID,
		Login:        rec.Login,
		PasswordHash: rec.PasswordHash,
		Activated:    rec.Activated,
		Roles:        rec.Roles,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
