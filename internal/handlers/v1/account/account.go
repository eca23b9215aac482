package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID          string `json:"id" doc:"Account UUID"`
	DisplayName string `json:"displayName" doc:"Unique display name"`
	Balance     string `json:"balance" doc:"Decimal balance"`
	Role        string `json:"role" doc:"Account role"`
	Enabled     bool   `json:"enabled" doc:"Whether the account is enabled"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

func accountToAPI(a *service.Account) Account {
	return Account{
		ID:          a.ID.String(),
		DisplayName: a.DisplayName,
		Balance:     a.Balance.String(),
		Role:        a.Role,
		Enabled:     a.Enabled,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

// parseCallerID resolves the authenticated caller from the X-Account-ID
// header the auth gateway sets. A missing or malformed value is a 401.
func parseCallerID(header string) (uuid.UUID, error) {
	id, err := uuid.FromString(header)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "missing or invalid X-Account-ID header", err)
	}
	return id, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return huma.NewError(http.StatusNotFound, "account not found", err)
	case errors.Is(err, ledger.ErrDisplayNameTaken):
		return huma.NewError(http.StatusConflict, "display name already in use", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "account operation failed", err)
	}
}
