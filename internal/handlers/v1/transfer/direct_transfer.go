package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// DirectTransferInput is the Huma input for a one-step transfer.
type DirectTransferInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	Body      TransferRequestBody
}

// DirectTransferOutput is the Huma output for a one-step transfer.
type DirectTransferOutput struct {
	Status int
	Body   Transfer
}

// directTransferrer is the interface for executing direct transfers.
type directTransferrer interface {
	TransferDirect(ctx context.Context, senderID uuid.UUID, receiverDisplayName string, amount decimal.Decimal, description string) (*service.Transfer, error)
}

// DirectTransferHandler handles POST /v1/transfers.
type DirectTransferHandler struct {
	TransferService directTransferrer
}

// NewDirectTransferHandler creates a new DirectTransferHandler.
func NewDirectTransferHandler(svc directTransferrer) *DirectTransferHandler {
	return &DirectTransferHandler{TransferService: svc}
}

// Register registers the direct transfer endpoint with the Huma API.
func (h *DirectTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "direct-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfers",
		Summary:     "Direct transfer",
		Description: "Moves funds to the receiver immediately, without a separate confirmation step.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *DirectTransferHandler) handle(ctx context.Context, input *DirectTransferInput) (*DirectTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("directTransferMs")
	}
	result, err := h.TransferService.TransferDirect(ctx, callerID, input.Body.ReceiverDisplayName, amount, input.Body.Description)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", result.ID.String())
	}

	return &DirectTransferOutput{
		Status: http.StatusCreated,
		Body:   transferToAPI(result),
	}, nil
}
