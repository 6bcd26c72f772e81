package dto

import (
	"errors"
	"strings"
)

// Transaction-count bounds for the download endpoints. Checked before
// any upstream call is made.
const (
	MaxTransactionsPerRequest = 20
	MaxAgentTransactions      = 100
)

var (
	ErrIDTokenRequired        = errors.New("idToken required")
	ErrTransactionIDsRequired = errors.New("transactionIds array is required")
	ErrTooManyTransactions    = errors.New("too many transactions")
	ErrYentaIDRequired        = errors.New("yentaId string is required")
	ErrNameRequired           = errors.New("name required")
	ErrIsActiveRequired       = errors.New("is_active must be a boolean value")
	ErrQueryRequired          = errors.New("query string is required")
	ErrCardIDRequired         = errors.New("cardId required")
)

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.IDToken) == "" {
		return ErrIDTokenRequired
	}
	return nil
}

func (r DownloadTransactionRequest) Validate() error {
	if len(r.TransactionIDs) == 0 {
		return ErrTransactionIDsRequired
	}
	if len(r.TransactionIDs) > MaxTransactionsPerRequest {
		return ErrTooManyTransactions
	}
	for _, id := range r.TransactionIDs {
		if strings.TrimSpace(id) == "" {
			return ErrTransactionIDsRequired
		}
	}
	return nil
}

func (r DownloadAgentRequest) Validate() error {
	if strings.TrimSpace(r.YentaID) == "" {
		return ErrYentaIDRequired
	}
	return nil
}

func (r AutomationCreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (r AutomationUpdateRequest) Validate() error {
	if r.IsActive == nil {
		return ErrIsActiveRequired
	}
	return nil
}

func (r KBSearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrQueryRequired
	}
	return nil
}

func (r CardInspectRequest) Validate() error {
	if strings.TrimSpace(r.CardID) == "" {
		return ErrCardIDRequired
	}
	return nil
}
