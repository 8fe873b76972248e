package repository

import (
	"time"

	"go-inventory-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter is the server-side filter/sort contract of the
// ledger listing. Zero values mean: all types, sorted by date ascending.
type TransactionFilter struct {
	Type      model.TransactionType
	SortBy    string // "date" or "amount"
	SortOrder string // "asc" or "desc"
}

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindFiltered(filter TransactionFilter) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockMovementData for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats for overview stats
type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	LowStockCount int64 `json:"low_stock_count"`
	TotalUnits    int64 `json:"total_units"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindFiltered(filter TransactionFilter) ([]model.Transaction, error) {
	query := r.db.Preload("Product")

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	column := "date"
	if filter.SortBy == "amount" {
		column = "quantity"
	}
	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}

	var transactions []model.Transaction
	err := query.Order(column + " " + direction).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate ledger rows per day
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(date) as day,
			COALESCE(SUM(CASE WHEN type = 'INBOUND' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'OUTBOUND' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(date)").
		Order("day ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	// Total Products
	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)

	// Low Stock Count (below each product's own threshold)
	r.db.Model(&model.Product{}).Where("quantity < min_stock").Count(&stats.LowStockCount)

	// Total units on hand
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(quantity), 0)").Scan(&stats.TotalUnits)

	return &stats, nil
}
