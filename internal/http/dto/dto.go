package dto

import (
	"github.com/opsview/dashboard-service/internal/auth"
)

type LoginRequest struct {
	IDToken string `json:"idToken"`
}

type UserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type SessionUser struct {
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Picture string    `json:"picture,omitempty"`
	Role    auth.Role `json:"role"`
}

type MeResponse struct {
	User SessionUser `json:"user"`
}

type PagesResponse struct {
	Pages []auth.PageAccess `json:"pages"`
}

type DownloadTransactionRequest struct {
	TransactionIDs []string `json:"transactionIds"`
}

type DownloadAgentRequest struct {
	YentaID         string `json:"yentaId"`
	LifecycleFilter string `json:"lifecycleFilter"`
}

type AutomationCreateRequest struct {
	Name       string `json:"name"`
	Initiative string `json:"initiative"`
	Platform   string `json:"platform"`
}

type AutomationUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}

type KBSearchRequest struct {
	Query      string `json:"query"`
	PerPage    int    `json:"perPage"`
	MaxPages   int    `json:"maxPages"`
	Multibrand *bool  `json:"multibrand"`
	Locale     string `json:"locale"`
}

type CardInspectRequest struct {
	CardID string `json:"cardId"`
}
