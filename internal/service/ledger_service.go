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
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientStock   = errors.New("insufficient stock remaining")
	ErrInvalidSortKey      = errors.New("invalid sort key, use date or amount")
	ErrInvalidSortOrder    = errors.New("invalid sort order, use asc or desc")
	ErrInvalidTypeFilter   = errors.New("invalid type filter, use INBOUND, OUTBOUND or ADJUSTMENT")
)

type RecordTransactionRequest struct {
	ProductID string                `json:"productId" validate:"required,uuid"`
	Type      model.TransactionType `json:"type" validate:"required,oneof=INBOUND OUTBOUND ADJUSTMENT"`
	Quantity  int                   `json:"quantity" validate:"required"`
	Reference string                `json:"reference"`
	Notes     string                `json:"notes"`
}

type LedgerService interface {
	RecordTransaction(req *RecordTransactionRequest) (*model.Transaction, error)
	GetTransactions(sortBy, sortOrder, typeFilter string) ([]model.Transaction, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
}

type ledgerService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
	}
}

// RecordTransaction adjusts the product's on-hand quantity and writes
// the ledger row in one transaction. INBOUND adds, OUTBOUND subtracts
// (never below zero), ADJUSTMENT applies the signed delta as-is.
func (s *ledgerService) RecordTransaction(req *RecordTransactionRequest) (*model.Transaction, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &validator.ValidationError{Fields: []validator.FieldError{
			{Field: "productId", Rule: "uuid"},
		}}
	}

	delta := req.Quantity
	switch req.Type {
	case model.TxInbound:
		if req.Quantity <= 0 {
			return nil, &validator.ValidationError{Fields: []validator.FieldError{
				{Field: "quantity", Rule: "gt", Param: "0"},
			}}
		}
	case model.TxOutbound:
		if req.Quantity <= 0 {
			return nil, &validator.ValidationError{Fields: []validator.FieldError{
				{Field: "quantity", Rule: "gt", Param: "0"},
			}}
		}
		delta = -req.Quantity
	}

	entry := &model.Transaction{
		ProductID: productID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Date:      time.Now(),
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		affected, err := s.productRepo.AdjustQuantity(tx, productID, delta)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}

		return s.transactionRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.FindByID(entry.ID)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("transaction_recorded", created,
		fmt.Sprintf("%s movement of %d units recorded", req.Type, req.Quantity))
	return created, nil
}

// GetTransactions evaluates filtering and sorting server-side, unlike
// the order listing where filtering is a client concern.
func (s *ledgerService) GetTransactions(sortBy, sortOrder, typeFilter string) ([]model.Transaction, error) {
	filter := repository.TransactionFilter{SortBy: "date", SortOrder: "asc"}

	switch sortBy {
	case "", "date":
	case "amount":
		filter.SortBy = "amount"
	default:
		return nil, ErrInvalidSortKey
	}

	switch sortOrder {
	case "", "asc":
	case "desc":
		filter.SortOrder = "desc"
	default:
		return nil, ErrInvalidSortOrder
	}

	switch model.TransactionType(typeFilter) {
	case "":
	case model.TxInbound, model.TxOutbound, model.TxAdjustment:
		filter.Type = model.TransactionType(typeFilter)
	default:
		return nil, ErrInvalidTypeFilter
	}

	return s.transactionRepo.FindFiltered(filter)
}

func (s *ledgerService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}
