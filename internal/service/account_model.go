package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account in the service layer.
type Account struct {
	ID          uuid.UUID
	DisplayName string
	Balance     decimal.Decimal
	Role        string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
