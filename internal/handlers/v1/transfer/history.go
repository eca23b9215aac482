package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// HistoryEntry is the API response model for one history row.
type HistoryEntry struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	OtherParty  string `json:"otherParty" doc:"Receiver name for SENT rows, sender name for RECEIVED rows"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Status      string `json:"status" doc:"PENDING, COMPLETED or CANCELLED"`
	Direction   string `json:"direction" doc:"SENT or RECEIVED"`
	Description string `json:"description,omitempty" doc:"Optional note"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

// HistoryInput is the Huma input for fetching the caller's history.
type HistoryInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
}

// HistoryResponseBody is the response body for the history endpoint.
type HistoryResponseBody struct {
	Entries []HistoryEntry `json:"entries" doc:"Sent and received transfers, newest first"`
}

// HistoryOutput is the Huma output for the history endpoint.
type HistoryOutput struct {
	Body HistoryResponseBody
}

// historyReader is the interface for reading an account's history.
type historyReader interface {
	GetHistory(ctx context.Context, accountID uuid.UUID) ([]service.HistoryEntry, error)
}

// HistoryHandler handles GET /v1/transfers/history.
type HistoryHandler struct {
	TransferService historyReader
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc historyReader) *HistoryHandler {
	return &HistoryHandler{TransferService: svc}
}

// Register registers the history endpoint with the Huma API.
func (h *HistoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transfer-history",
		Method:      http.MethodGet,
		Path:        "/v1/transfers/history",
		Summary:     "Transfer history",
		Description: "Returns the caller's sent and received transfers, newest first.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *HistoryHandler) handle(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	logData := logging.GetLogData(ctx)

	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("historyMs")
	}
	entries, err := h.TransferService.GetHistory(ctx, callerID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	if logData != nil {
		logData.AddData("entryCount", len(entries))
	}

	resp := HistoryResponseBody{Entries: make([]HistoryEntry, len(entries))}
	for i, entry := range entries {
		resp.Entries[i] = HistoryEntry{
			ID:          entry.ID.String(),
			OtherParty:  entry.OtherParty,
			Amount:      entry.Amount.String(),
			Status:      string(entry.Status),
			Direction:   string(entry.Direction),
			Description: entry.Description,
			CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
		}
	}

	return &HistoryOutput{Body: resp}, nil
}
