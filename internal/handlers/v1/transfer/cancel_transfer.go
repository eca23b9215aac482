package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// CancelTransferInput is the Huma input for cancelling a pending transfer.
type CancelTransferInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	ID        string `path:"id" doc:"Transaction UUID"`
}

// CancelTransferOutput is the Huma output for cancelling a pending transfer.
type CancelTransferOutput struct {
	Body Transfer
}

// transferCanceller is the interface for cancelling transfers.
type transferCanceller interface {
	CancelTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*service.Transfer, error)
}

// CancelTransferHandler handles POST /v1/transfers/{id}/cancel.
type CancelTransferHandler struct {
	TransferService transferCanceller
}

// NewCancelTransferHandler creates a new CancelTransferHandler.
func NewCancelTransferHandler(svc transferCanceller) *CancelTransferHandler {
	return &CancelTransferHandler{TransferService: svc}
}

// Register registers the cancel transfer endpoint with the Huma API.
func (h *CancelTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cancel-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfers/{id}/cancel",
		Summary:     "Cancel transfer",
		Description: "Discards a PENDING transfer. No balances change.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *CancelTransferHandler) handle(ctx context.Context, input *CancelTransferInput) (*CancelTransferOutput, error) {
	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	result, err := h.TransferService.CancelTransfer(ctx, transactionID, callerID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &CancelTransferOutput{Body: transferToAPI(result)}, nil
}
