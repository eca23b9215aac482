package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// GetTransferInput is the Huma input for fetching one transfer.
type GetTransferInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	ID        string `path:"id" doc:"Transaction UUID"`
}

// GetTransferOutput is the Huma output for fetching one transfer.
type GetTransferOutput struct {
	Body Transfer
}

// transferGetter is the interface for reading a single transfer.
type transferGetter interface {
	GetTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*service.Transfer, error)
}

// GetTransferHandler handles GET /v1/transfers/{id}.
type GetTransferHandler struct {
	TransferService transferGetter
}

// NewGetTransferHandler creates a new GetTransferHandler.
func NewGetTransferHandler(svc transferGetter) *GetTransferHandler {
	return &GetTransferHandler{TransferService: svc}
}

// Register registers the get transfer endpoint with the Huma API.
func (h *GetTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transfer",
		Method:      http.MethodGet,
		Path:        "/v1/transfers/{id}",
		Summary:     "Get transfer",
		Description: "Returns one transfer. Only the sender may view it.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *GetTransferHandler) handle(ctx context.Context, input *GetTransferInput) (*GetTransferOutput, error) {
	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	result, err := h.TransferService.GetTransfer(ctx, transactionID, callerID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &GetTransferOutput{Body: transferToAPI(result)}, nil
}
