package repository

import (
	"go-inventory-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
	NextSequence(tx *gorm.DB, orderType model.OrderType, day string) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create persists the order together with its items (GORM cascades the
// association). It takes *gorm.DB (tx) so order, items, and sequence
// commit atomically.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Category").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Category").
		First(&order, "id = ?", id).Error
	return &order, err
}

// Delete removes the order and the items it owns.
func (r *orderRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Unscoped().Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&model.Order{}, "id = ?", id).Error
}

// NextSequence atomically increments the per-type-per-day counter and
// returns the new value. The row is seeded with ON CONFLICT DO NOTHING
// and the increment runs as a single UPDATE holding the row lock, so two
// concurrent order creations cannot observe the same number.
func (r *orderRepo) NextSequence(tx *gorm.DB, orderType model.OrderType, day string) (int64, error) {
	seed := model.OrderSequence{OrderType: orderType, Day: day, Counter: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	if err := tx.Model(&model.OrderSequence{}).
		Where("order_type = ? AND day = ?", orderType, day).
		Update("counter", gorm.Expr("counter + 1")).Error; err != nil {
		return 0, err
	}

	var seq model.OrderSequence
	if err := tx.First(&seq, "order_type = ? AND day = ?", orderType, day).Error; err != nil {
		return 0, err
	}
	return seq.Counter, nil
}
