package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordEncoder hashes plain text passwords one way and checks candidates against a digest.
type PasswordEncoder interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// BcryptEncoder implements PasswordEncoder with bcrypt.
// Cost is configurable so tests can run with bcrypt.MinCost.
type BcryptEncoder struct {
	cost int
}

func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{cost: cost}
}

func (e *BcryptEncoder) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), e.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (e *BcryptEncoder) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
