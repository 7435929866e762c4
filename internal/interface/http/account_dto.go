package handlers

import (
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// accountDTO is the public view of an account. Keys and the password hash never leave the service.
type accountDTO struct {
	ID               string    `json:"id"`
	Login            string    `json:"login"`
	FirstName        string    `json:"firstName,omitempty"`
	LastName         string    `json:"lastName,omitempty"`
	Email            string    `json:"email"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	Activated        bool      `json:"activated"`
	LangKey          string    `json:"langKey"`
	CreatedBy        string    `json:"createdBy"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedBy   string    `json:"lastModifiedBy,omitempty"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	Authorities      []string  `json:"authorities"`
}

func toAccountDTO(a *entity.Account) accountDTO {
	return accountDTO{
		ID:               a.ID,
		Login:            a.Login,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		ImageURL:         a.ImageURL,
		Activated:        a.Activated(),
		LangKey:          a.LangKey,
		CreatedBy:        a.CreatedBy,
		CreatedDate:      a.CreatedAt,
		LastModifiedBy:   a.LastModifiedBy,
		LastModifiedDate: a.LastModifiedAt,
		Authorities:      a.Roles,
	}
}
