package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// RegisterAccountBody is the request body for registering an account.
// Credentials are handled by the auth gateway; the ledger only needs the
// display name.
type RegisterAccountBody struct {
	DisplayName string `json:"displayName" minLength:"1" doc:"Unique display name"`
}

// RegisterAccountInput is the Huma input for registering an account.
type RegisterAccountInput struct {
	Body RegisterAccountBody
}

// RegisterAccountOutput is the Huma output for registering an account.
type RegisterAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, displayName string) (*service.Account, error)
}

// RegisterAccountHandler handles POST /v1/accounts.
type RegisterAccountHandler struct {
	AccountService accountCreator
}

// NewRegisterAccountHandler creates a new RegisterAccountHandler.
func NewRegisterAccountHandler(svc accountCreator) *RegisterAccountHandler {
	return &RegisterAccountHandler{AccountService: svc}
}

// Register registers the account registration endpoint with the Huma API.
func (h *RegisterAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts",
		Summary:     "Register account",
		Description: "Creates a new account with the fixed starting balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *RegisterAccountHandler) handle(ctx context.Context, input *RegisterAccountInput) (*RegisterAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("registerAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, input.Body.DisplayName)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError(err)
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &RegisterAccountOutput{
		Status: http.StatusCreated,
		Body:   accountToAPI(created),
	}, nil
}
