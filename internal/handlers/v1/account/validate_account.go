package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ValidateAccountInput is the Huma input for checking a display name.
type ValidateAccountInput struct {
	DisplayName string `path:"displayName" doc:"Display name to check"`
}

// ValidateAccountResponseBody is the response body for the validate endpoint.
type ValidateAccountResponseBody struct {
	Valid       bool   `json:"valid" doc:"Whether an account with this display name exists"`
	DisplayName string `json:"displayName" doc:"The checked display name"`
}

// ValidateAccountOutput is the Huma output for checking a display name.
type ValidateAccountOutput struct {
	Body ValidateAccountResponseBody
}

// accountChecker is the interface for checking display name existence.
type accountChecker interface {
	AccountExists(ctx context.Context, displayName string) (bool, error)
}

// ValidateAccountHandler handles GET /v1/accounts/validate/{displayName}.
// Senders use it to verify a receiver before initiating a transfer.
type ValidateAccountHandler struct {
	AccountService accountChecker
}

// NewValidateAccountHandler creates a new ValidateAccountHandler.
func NewValidateAccountHandler(svc accountChecker) *ValidateAccountHandler {
	return &ValidateAccountHandler{AccountService: svc}
}

// Register registers the validate endpoint with the Huma API.
func (h *ValidateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/validate/{displayName}",
		Summary:     "Validate account",
		Description: "Reports whether an account with the given display name exists.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ValidateAccountHandler) handle(ctx context.Context, input *ValidateAccountInput) (*ValidateAccountOutput, error) {
	exists, err := h.AccountService.AccountExists(ctx, input.DisplayName)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to validate account", err)
	}

	return &ValidateAccountOutput{
		Body: ValidateAccountResponseBody{
			Valid:       exists,
			DisplayName: input.DisplayName,
		},
	}, nil
}
