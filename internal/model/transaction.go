package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxInbound    TransactionType = "INBOUND"
	TxOutbound   TransactionType = "OUTBOUND"
	TxAdjustment TransactionType = "ADJUSTMENT"
)

// Transaction is a stock-movement ledger entry. Quantities are stored
// positive for INBOUND/OUTBOUND and signed for ADJUSTMENT; outbound rows
// are rendered negative by the UI, not here.
type Transaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId" validate:"uuid_required"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
	Type      TransactionType `gorm:"type:varchar(12);not null" json:"type" validate:"required,oneof=INBOUND OUTBOUND ADJUSTMENT"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Reference string          `gorm:"type:varchar(50)" json:"reference,omitempty"` // e.g. an order number
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}
