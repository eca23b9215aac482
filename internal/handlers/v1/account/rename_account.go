package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/service"
)

// RenameAccountBody is the request body for renaming an account.
type RenameAccountBody struct {
	DisplayName string `json:"displayName" minLength:"1" doc:"New unique display name"`
}

// RenameAccountInput is the Huma input for renaming an account.
type RenameAccountInput struct {
	AccountID string `header:"X-Account-ID" doc:"Authenticated caller account UUID"`
	Body      RenameAccountBody
}

// RenameAccountOutput is the Huma output for renaming an account.
type RenameAccountOutput struct {
	Body Account
}

// accountRenamer is the interface for renaming accounts.
type accountRenamer interface {
	RenameAccount(ctx context.Context, id uuid.UUID, displayName string) (*service.Account, error)
}

// RenameAccountHandler handles PATCH /v1/accounts/profile.
type RenameAccountHandler struct {
	AccountService accountRenamer
}

// NewRenameAccountHandler creates a new RenameAccountHandler.
func NewRenameAccountHandler(svc accountRenamer) *RenameAccountHandler {
	return &RenameAccountHandler{AccountService: svc}
}

// Register registers the rename endpoint with the Huma API.
func (h *RenameAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rename-account",
		Method:      http.MethodPatch,
		Path:        "/v1/accounts/profile",
		Summary:     "Rename account",
		Description: "Changes the caller's display name. Past transfers keep the name recorded when they were created.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *RenameAccountHandler) handle(ctx context.Context, input *RenameAccountInput) (*RenameAccountOutput, error) {
	callerID, err := parseCallerID(input.AccountID)
	if err != nil {
		return nil, err
	}

	renamed, err := h.AccountService.RenameAccount(ctx, callerID, input.Body.DisplayName)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &RenameAccountOutput{Body: accountToAPI(renamed)}, nil
}
