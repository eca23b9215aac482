package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// GetBalanceInput is the Huma input for reading the caller's balance.
type GetBalanceInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
}

// GetBalanceResponseBody is the response body for the balance endpoint.
type GetBalanceResponseBody struct {
	DisplayName string `json:"displayName" doc:"Caller display name"`
	Balance     string `json:"balance" doc:"Decimal balance"`
}

// GetBalanceOutput is the Huma output for reading the caller's balance.
type GetBalanceOutput struct {
	Body GetBalanceResponseBody
}

// accountGetter is the interface for reading a single account.
type accountGetter interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// GetBalanceHandler handles GET /v1/accounts/balance.
type GetBalanceHandler struct {
	AccountService accountGetter
}

// NewGetBalanceHandler creates a new GetBalanceHandler.
func NewGetBalanceHandler(svc accountGetter) *GetBalanceHandler {
	return &GetBalanceHandler{AccountService: svc}
}

// Register registers the balance endpoint with the Huma API.
func (h *GetBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/balance",
		Summary:     "Get balance",
		Description: "Returns the caller's display name and current balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetBalanceHandler) handle(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.GetAccount(ctx, callerID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &GetBalanceOutput{
		Body: GetBalanceResponseBody{
			DisplayName: acc.DisplayName,
			Balance:     acc.Balance.String(),
		},
	}, nil
}
