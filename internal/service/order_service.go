package service

import (
	"errors"
	"fmt"
	"time"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/ws"
	"go-inventory-orders/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrOrderNotFound = errors.New("order not found")
)

// Order numbers embed the creation date as DD-MM-YYYY, computed per
// request.
const orderNumberDateLayout = "02-01-2006"

type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateOrderRequest struct {
	Type             model.OrderType    `json:"type" validate:"required,oneof=PURCHASE SALES"`
	CustomerSupplier string             `json:"customerSupplier" validate:"required"`
	Status           model.OrderStatus  `json:"status" validate:"required,oneof=PENDING APPROVED PROCESSING COMPLETED CANCELLED"`
	Notes            string             `json:"notes"`
	Items            []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderService interface {
	CreateOrder(req *CreateOrderRequest) (*model.Order, error)
	GetOrder(id uuid.UUID) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	DeleteOrder(id uuid.UUID) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
	wsHub     *ws.Hub
}

func NewOrderService(oRepo repository.OrderRepository, db *gorm.DB, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo: oRepo,
		db:        db,
		wsHub:     hub,
	}
}

// CreateOrder persists the order and its line items atomically. The
// total is derived server-side as the sum of quantity * unitPrice over
// the items; the counterparty lands in the supplier slot for PURCHASE
// and the customer slot for SALES, never both. The order number is
// PO|SO-DD-MM-YYYY-<n> with <n> drawn from a per-type-per-day sequence
// inside the same transaction, so numbers are unique per type per day.
func (s *orderService) CreateOrder(req *CreateOrderRequest) (*model.Order, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	order := &model.Order{
		Type:   req.Type,
		Status: req.Status,
		Notes:  req.Notes,
	}

	counterparty := req.CustomerSupplier
	if req.Type == model.OrderPurchase {
		order.Supplier = &counterparty
	} else {
		order.Customer = &counterparty
	}

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, &validator.ValidationError{Fields: []validator.FieldError{
				{Field: "items.productId", Rule: "uuid"},
			}}
		}
		lineTotal := float64(item.Quantity) * item.UnitPrice
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  &productID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
		order.TotalAmount += lineTotal
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		day := time.Now().Format(orderNumberDateLayout)
		seq, err := s.orderRepo.NextSequence(tx, req.Type, day)
		if err != nil {
			return err
		}

		prefix := "SO"
		if req.Type == model.OrderPurchase {
			prefix = "PO"
		}
		order.OrderNumber = fmt.Sprintf("%s-%s-%d", prefix, day, seq)

		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("order_created", created, fmt.Sprintf("Order %s created", created.OrderNumber))
	return created, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetAllOrders returns every order newest-first with items and products
// expanded. Filtering over this set is a client concern.
func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

// DeleteOrder removes the order together with the items it owns.
func (s *orderService) DeleteOrder(id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish("order_deleted", map[string]interface{}{
		"id":          id,
		"orderNumber": order.OrderNumber,
	}, fmt.Sprintf("Order %s deleted", order.OrderNumber))
	return nil
}
