package dto

import (
	"strings"
	"time"

	"hallticket_backend/internals/features/auth/admins/model"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return helper.Validator().Struct(r)
}

type AdminResponse struct {
	AdminID       uuid.UUID `json:"admin_id"`
	AdminUsername string    `json:"admin_username"`
	AdminName     string    `json:"admin_name"`
	AdminRole     string    `json:"admin_role"`
}

func ToAdminResponse(m *model.AdminModel) AdminResponse {
	return AdminResponse{
		AdminID:       m.AdminID,
		AdminUsername: m.AdminUsername,
		AdminName:     m.AdminName,
		AdminRole:     m.AdminRole,
	}
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Admin       AdminResponse `json:"admin"`
}
