package service

import (
	"errors"
	"fmt"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/ws"
	"go-inventory-orders/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSKU     = errors.New("SKU already exists")
)

// ProductRequest is the full-replacement payload for product create and
// update. Every field is validated before any write happens.
type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	SKU         string `json:"sku" validate:"required"`
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Unit        string `json:"unit" validate:"required"`
	MinStock    int    `json:"minStock" validate:"gte=0"`
}

type CatalogService interface {
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetAllCategories() ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

// Referential cleanup policy for product removal: each dependent record
// type is either detached (product link cleared, row preserved) or
// removed outright. New dependents get a new row here, not a new
// hand-coded step.
type cleanupMode int

const (
	cleanupDetach cleanupMode = iota
	cleanupDelete
)

type cleanupPolicy struct {
	dependent interface{}
	column    string
	mode      cleanupMode
}

var productCleanupPolicies = []cleanupPolicy{
	{dependent: &model.OrderItem{}, column: "product_id", mode: cleanupDetach},
	{dependent: &model.Transaction{}, column: "product_id", mode: cleanupDelete},
}

func applyCleanupPolicies(tx *gorm.DB, productID uuid.UUID) error {
	for _, policy := range productCleanupPolicies {
		switch policy.mode {
		case cleanupDetach:
			if err := tx.Model(policy.dependent).
				Where(policy.column+" = ?", productID).
				Update(policy.column, nil).Error; err != nil {
				return err
			}
		case cleanupDelete:
			if err := tx.Unscoped().
				Where(policy.column+" = ?", productID).
				Delete(policy.dependent).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *catalogService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}

	// SKU duplication check (business rule, not schema)
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateSKU
	}

	product := &model.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		CategoryID:  categoryID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("product_created", created, fmt.Sprintf("Product '%s' created", created.Name))
	return created, nil
}

// UpdateProduct overwrites every product field transactionally after the
// whole payload validates. The category reference must exist before any
// write begins.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.CategoryID = categoryID
		existing.Description = req.Description
		existing.Quantity = req.Quantity
		existing.Unit = req.Unit
		existing.MinStock = req.MinStock

		return tx.Save(&existing).Error
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("product_updated", updated, fmt.Sprintf("Product '%s' updated", updated.Name))
	return updated, nil
}

// DeleteProduct runs the cascade protocol: detach referencing order
// items, remove the ledger rows, then the product itself, all in one
// transaction. A failure at any step rolls back every mutation.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyCleanupPolicies(tx, id); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.wsHub.Publish("product_deleted", map[string]interface{}{
		"id":   id,
		"sku":  product.SKU,
		"name": product.Name,
	}, fmt.Sprintf("Product '%s' deleted", product.Name))
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// resolveCategory parses and existence-checks a category reference.
func (s *catalogService) resolveCategory(raw string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrCategoryNotFound
	}
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrCategoryNotFound
		}
		return uuid.Nil, err
	}
	return categoryID, nil
}
