package model

import "github.com/google/uuid"

type OrderType string

const (
	OrderPurchase OrderType = "PURCHASE"
	OrderSales    OrderType = "SALES"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderApproved   OrderStatus = "APPROVED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Order owns its items; exactly one of Supplier/Customer is set,
// matching Type (supplier for PURCHASE, customer for SALES).
type Order struct {
	BaseModel
	OrderNumber string      `gorm:"type:varchar(40);not null;index" json:"orderNumber"`
	Type        OrderType   `gorm:"type:varchar(10);not null" json:"type"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Supplier    *string     `gorm:"type:varchar(255)" json:"supplier,omitempty"`
	Customer    *string     `gorm:"type:varchar(255)" json:"customer,omitempty"`
	TotalAmount float64     `gorm:"not null;default:0" json:"totalAmount"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// Counterparty returns whichever of supplier/customer is set.
func (o *Order) Counterparty() string {
	if o.Supplier != nil {
		return *o.Supplier
	}
	if o.Customer != nil {
		return *o.Customer
	}
	return ""
}

// OrderItem snapshots quantity and pricing at order time. ProductID is
// nullable: a cascade detach on product removal clears the link while the
// snapshot fields survive.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index" json:"productId"`
	Product    *Product   `json:"product,omitempty"`
	Quantity   int        `gorm:"not null" json:"quantity"`
	UnitPrice  float64    `gorm:"not null" json:"unitPrice"`
	TotalPrice float64    `gorm:"not null" json:"totalPrice"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderSequence backs per-type-per-day order numbering. Day is the
// DD-MM-YYYY string embedded in the order number.
type OrderSequence struct {
	OrderType OrderType `gorm:"type:varchar(10);primaryKey"`
	Day       string    `gorm:"type:varchar(10);primaryKey"`
	Counter   int64     `gorm:"not null;default:0"`
}

func (OrderSequence) TableName() string {
	return "order_sequences"
}
