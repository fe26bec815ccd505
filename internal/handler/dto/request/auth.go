package request

import (
	"equipment-reservation/internal/domain/admin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (admin.Email, admin.Password, error) {
	email, err := admin.NewEmail(r.Email)
	if err != nil {
		return admin.Email{}, admin.Password{}, err
	}
	password, err := admin.NewPassword(r.Password)
	if err != nil {
		return admin.Email{}, admin.Password{}, err
	}
	return email, password, nil
}
