package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ConfirmTransferInput is the Huma input for confirming a pending transfer.
type ConfirmTransferInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	ID        string `path:"id" doc:"Transaction UUID"`
}

// ConfirmTransferOutput is the Huma output for confirming a pending transfer.
type ConfirmTransferOutput struct {
	Body Transfer
}

// transferConfirmer is the interface for confirming transfers.
type transferConfirmer interface {
	ConfirmTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*service.Transfer, error)
}

// ConfirmTransferHandler handles POST /v1/transfers/{id}/confirm.
type ConfirmTransferHandler struct {
	TransferService transferConfirmer
}

// NewConfirmTransferHandler creates a new ConfirmTransferHandler.
func NewConfirmTransferHandler(svc transferConfirmer) *ConfirmTransferHandler {
	return &ConfirmTransferHandler{TransferService: svc}
}

// Register registers the confirm transfer endpoint with the Huma API.
func (h *ConfirmTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "confirm-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfers/{id}/confirm",
		Summary:     "Confirm transfer",
		Description: "Applies a PENDING transfer: balances move and the transaction completes.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ConfirmTransferHandler) handle(ctx context.Context, input *ConfirmTransferInput) (*ConfirmTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("confirmTransferMs")
	}
	result, err := h.TransferService.ConfirmTransfer(ctx, transactionID, callerID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &ConfirmTransferOutput{Body: transferToAPI(result)}, nil
}
