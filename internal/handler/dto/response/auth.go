package response

import (
	"time"

	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AdminResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresIn   int64          `json:"expires_in"`
	Admin       *AdminResponse `json:"admin"`
}

func FromAdminView(v *queries.AdminView) *AdminResponse {
	var res AdminResponse
	_ = copier.Copy(&res, v)
	return &res
}
