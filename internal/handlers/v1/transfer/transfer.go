package transfer

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Transfer is the API response model for a transfer.
// It is used only for responses, not for request bodies.
type Transfer struct {
	ID                  string `json:"id" doc:"Transaction UUID"`
	SenderID            string `json:"senderID" doc:"Sender account UUID"`
	SenderDisplayName   string `json:"senderDisplayName" doc:"Sender display name"`
	ReceiverDisplayName string `json:"receiverDisplayName" doc:"Receiver display name recorded at creation time"`
	Amount              string `json:"amount" doc:"Decimal amount"`
	Status              string `json:"status" doc:"PENDING, COMPLETED or CANCELLED"`
	Description         string `json:"description,omitempty" doc:"Optional note"`
	CreatedAt           string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransferRequestBody is the request body for initiating or directly
// executing a transfer.
type TransferRequestBody struct {
	ReceiverDisplayName string `json:"receiverDisplayName" minLength:"1" doc:"Receiver display name"`
	Amount              string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Description         string `json:"description,omitempty" doc:"Optional note"`
}

func transferToAPI(t *service.Transfer) Transfer {
	return Transfer{
		ID:                  t.ID.String(),
		SenderID:            t.SenderID.String(),
		SenderDisplayName:   t.SenderDisplayName,
		ReceiverDisplayName: t.ReceiverDisplayName,
		Amount:              t.Amount.String(),
		Status:              string(t.Status),
		Description:         t.Description,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
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
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return huma.NewError(http.StatusNotFound, "transaction not found", err)
	case errors.Is(err, ledger.ErrSelfTransferNotAllowed):
		return huma.NewError(http.StatusBadRequest, "cannot transfer to your own account", err)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return huma.NewError(http.StatusBadRequest, "amount must be positive", err)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return huma.NewError(http.StatusUnprocessableEntity, "insufficient balance", err)
	case errors.Is(err, ledger.ErrUnauthorized):
		return huma.NewError(http.StatusForbidden, "not the transaction sender", err)
	case errors.Is(err, ledger.ErrInvalidStatus):
		return huma.NewError(http.StatusConflict, "transaction is not pending", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "transfer operation failed", err)
	}
}
