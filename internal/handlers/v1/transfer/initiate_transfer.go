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

// InitiateTransferInput is the Huma input for starting a two-phase transfer.
type InitiateTransferInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	Body      TransferRequestBody
}

// InitiateTransferOutput is the Huma output for starting a two-phase transfer.
type InitiateTransferOutput struct {
	Status int
	Body   Transfer
}

// transferInitiator is the interface for initiating transfers.
type transferInitiator interface {
	InitiateTransfer(ctx context.Context, senderID uuid.UUID, receiverDisplayName string, amount decimal.Decimal, description string) (*service.Transfer, error)
}

// InitiateTransferHandler handles POST /v1/transfers/initiate.
type InitiateTransferHandler struct {
	TransferService transferInitiator
}

// NewInitiateTransferHandler creates a new InitiateTransferHandler.
func NewInitiateTransferHandler(svc transferInitiator) *InitiateTransferHandler {
	return &InitiateTransferHandler{TransferService: svc}
}

// Register registers the initiate transfer endpoint with the Huma API.
func (h *InitiateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "initiate-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfers/initiate",
		Summary:     "Initiate transfer",
		Description: "Creates a PENDING transfer. Funds move only when the sender confirms it.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *InitiateTransferHandler) handle(ctx context.Context, input *InitiateTransferInput) (*InitiateTransferOutput, error) {
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
		stopTimer = logData.AddTiming("initiateTransferMs")
	}
	result, err := h.TransferService.InitiateTransfer(ctx, callerID, input.Body.ReceiverDisplayName, amount, input.Body.Description)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", result.ID.String())
	}

	return &InitiateTransferOutput{
		Status: http.StatusCreated,
		Body:   transferToAPI(result),
	}, nil
}
