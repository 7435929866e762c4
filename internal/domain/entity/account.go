package entity

import (
	"slices"
	"time"
)

// AccountStatus is either Pending (carrying the activation key) or Activated.
// The zero value is not a valid status; use Pending or Activated.
type AccountStatus struct {
	activationKey string
	activated     bool
}

// Pending returns the status of an account waiting for its activation key.
func Pending(activationKey string) AccountStatus {
	return AccountStatus{activationKey: activationKey}
}

// Activated returns the status of an account whose activation key was redeemed.
func Activated() AccountStatus {
	return AccountStatus{activated: true}
}

func (s AccountStatus) IsActivated() bool { return s.activated }

// ActivationKey returns the pending key, ok is false once activated.
func (s AccountStatus) ActivationKey() (string, bool) {
	if s.activated {
		return "", false
	}
	return s.activationKey, true
}

func (s AccountStatus) String() string {
	if s.activated {
		return "activated"
	}
	return "pending"
}

// PasswordReset is an open reset window. Key and RequestedAt live and die together.
type PasswordReset struct {
	Key         string
	RequestedAt time.Time
}

// Expired reports whether the window opened at RequestedAt is closed at now.
// A request exactly window old is already expired.
func (r PasswordReset) Expired(now time.Time, window time.Duration) bool {
	return !r.RequestedAt.After(now.Add(-window))
}

// Account is the aggregate root for identity and credentials.
// Login and Email are kept lowercased; PasswordHash holds the encoder digest.
type Account struct {
	ID           string
	Login        string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	ImageURL     string
	LangKey      string
	Status       AccountStatus
	Reset        *PasswordReset
	Roles        []string

	CreatedBy      string
	CreatedAt      time.Time
	LastModifiedBy string
	LastModifiedAt time.Time

	// Version is bumped by the store on every update.
	Version int64
}

func (a *Account) Activated() bool { return a.Status.IsActivated() }

func (a *Account) HasRole(role string) bool { return slices.Contains(a.Roles, role) }

// Activate consumes the activation key.
func (a *Account) Activate(by string, now time.Time) {
	a.Status = Activated()
	a.LastModifiedBy = by
	a.LastModifiedAt = now
}

// OpenReset starts a new reset window, replacing any previous one.
func (a *Account) OpenReset(key string, now time.Time) {
	a.Reset = &PasswordReset{Key: key, RequestedAt: now}
}

// ChangePassword stores a new digest and closes any open reset window.
func (a *Account) ChangePassword(hash, by string, now time.Time) {
	a.PasswordHash = hash
	a.Reset = nil
	a.LastModifiedBy = by
	a.LastModifiedAt = now
}

// Credentials is the part of an account needed to authenticate it.
type Credentials struct {
	AccountID    string
	Login        string
	PasswordHash string
	Activated    bool
	Roles        []string
}
