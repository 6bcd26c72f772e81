package dto

import (
	"github.com/opsview/dashboard-service/internal/auth"
)

// FromIdentity builds the login response for a freshly issued session.
func FromIdentity(id auth.Identity) LoginResponse {
	return LoginResponse{
		Success: true,
		User:    UserInfo{Email: id.Email, Name: id.Name, Picture: id.Picture},
	}
}

// FromSession builds the /auth/me payload.
func FromSession(id auth.Identity, role auth.Role) MeResponse {
	return MeResponse{User: SessionUser{
		Email:   id.Email,
		Name:    id.Name,
		Picture: id.Picture,
		Role:    role,
	}}
}
