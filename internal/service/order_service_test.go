package service

import (
	"fmt"
	"testing"
	"time"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/repository"
	pkgvalidator "go-inventory-orders/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T, db *gorm.DB) OrderService {
	t.Helper()
	return NewOrderService(repository.NewOrderRepo(db), db, nil)
}

func TestCreateOrder_TotalsAndCounterparty(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	p1 := createProduct(t, db, "ELC-001", category.ID, 40)
	p2 := createProduct(t, db, "ELC-002", category.ID, 10)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		Type:             model.OrderSales,
		CustomerSupplier: "Acme",
		Status:           model.OrderPending,
		Items: []OrderItemRequest{
			{ProductID: p1.ID.String(), Quantity: 3, UnitPrice: 10},
			{ProductID: p2.ID.String(), Quantity: 1, UnitPrice: 25},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 55.0, order.TotalAmount)
	require.Len(t, order.Items, 2)

	var itemSum float64
	for _, item := range order.Items {
		assert.Equal(t, float64(item.Quantity)*item.UnitPrice, item.TotalPrice)
		itemSum += item.TotalPrice
	}
	assert.Equal(t, order.TotalAmount, itemSum)

	// SALES routes the counterparty to customer, never supplier.
	require.NotNil(t, order.Customer)
	assert.Equal(t, "Acme", *order.Customer)
	assert.Nil(t, order.Supplier)
	assert.Equal(t, "Acme", order.Counterparty())

	// Line items carry the expanded product.
	require.NotNil(t, order.Items[0].Product)
}

func TestCreateOrder_PurchaseRoutesSupplier(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Raw Materials")
	product := createProduct(t, db, "RAW-001", category.ID, 100)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		Type:             model.OrderPurchase,
		CustomerSupplier: "Initech",
		Status:           model.OrderApproved,
		Items: []OrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 10, UnitPrice: 2.5},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, order.Supplier)
	assert.Equal(t, "Initech", *order.Supplier)
	assert.Nil(t, order.Customer)
	assert.Equal(t, 25.0, order.TotalAmount)
}

func TestCreateOrder_NumberFormatAndSequence(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, "ELC-001", category.ID, 40)

	day := time.Now().Format("02-01-2006")

	for i := 1; i <= 2; i++ {
		sales, err := svc.CreateOrder(&CreateOrderRequest{
			Type:             model.OrderSales,
			CustomerSupplier: "Acme",
			Status:           model.OrderPending,
			Items:            []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%s-%d", day, i), sales.OrderNumber)
	}

	purchase, err := svc.CreateOrder(&CreateOrderRequest{
		Type:             model.OrderPurchase,
		CustomerSupplier: "Initech",
		Status:           model.OrderPending,
		Items:            []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%s-1", day), purchase.OrderNumber)
}

func TestCreateOrder_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, "ELC-001", category.ID, 40)

	cases := []struct {
		name string
		req  *CreateOrderRequest
	}{
		{"empty items", &CreateOrderRequest{
			Type: model.OrderSales, CustomerSupplier: "Acme", Status: model.OrderPending,
		}},
		{"zero quantity", &CreateOrderRequest{
			Type: model.OrderSales, CustomerSupplier: "Acme", Status: model.OrderPending,
			Items: []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 0, UnitPrice: 10}},
		}},
		{"negative unit price", &CreateOrderRequest{
			Type: model.OrderSales, CustomerSupplier: "Acme", Status: model.OrderPending,
			Items: []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: -1}},
		}},
		{"bad type", &CreateOrderRequest{
			Type: "TRANSFER", CustomerSupplier: "Acme", Status: model.OrderPending,
			Items: []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 10}},
		}},
		{"bad status", &CreateOrderRequest{
			Type: model.OrderSales, CustomerSupplier: "Acme", Status: "SHIPPED",
			Items: []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 10}},
		}},
		{"missing counterparty", &CreateOrderRequest{
			Type: model.OrderSales, Status: model.OrderPending,
			Items: []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 10}},
		}},
		{"malformed product id", &CreateOrderRequest{
			Type: model.OrderSales, CustomerSupplier: "Acme", Status: model.OrderPending,
			Items: []OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(tc.req)
			var verr *pkgvalidator.ValidationError
			require.ErrorAs(t, err, &verr, "expected validation error")

			// Rejected before any write.
			var orderCount int64
			db.Model(&model.Order{}).Count(&orderCount)
			assert.Zero(t, orderCount)
		})
	}
}

func TestCreateOrder_DoesNotTouchStockOrLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, "ELC-001", category.ID, 40)

	_, err := svc.CreateOrder(&CreateOrderRequest{
		Type:             model.OrderSales,
		CustomerSupplier: "Acme",
		Status:           model.OrderCompleted,
		Items:            []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 5, UnitPrice: 10}},
	})
	require.NoError(t, err)

	var current model.Product
	db.First(&current, "id = ?", product.ID)
	assert.Equal(t, 40, current.Quantity, "order creation must not decrement stock")

	var txCount int64
	db.Model(&model.Transaction{}).Count(&txCount)
	assert.Zero(t, txCount, "order creation must not emit ledger entries")
}

func TestGetAllOrders_NewestFirstWithProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, "ELC-001", category.ID, 40)

	var lastID uuid.UUID
	for i := 0; i < 3; i++ {
		order, err := svc.CreateOrder(&CreateOrderRequest{
			Type:             model.OrderSales,
			CustomerSupplier: "Acme",
			Status:           model.OrderPending,
			Items:            []OrderItemRequest{{ProductID: product.ID.String(), Quantity: i + 1, UnitPrice: 10}},
		})
		require.NoError(t, err)
		lastID = order.ID
		time.Sleep(5 * time.Millisecond)
	}

	orders, err := svc.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, lastID, orders[0].ID, "expected newest order first")

	for _, order := range orders {
		require.NotEmpty(t, order.Items)
		require.NotNil(t, order.Items[0].Product)
		assert.Equal(t, "ELC-001", order.Items[0].Product.SKU)
	}
}

func TestDeleteOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	category := createCategory(t, db, "Electronics")
	product := createProduct(t, db, "ELC-001", category.ID, 40)

	order, err := svc.CreateOrder(&CreateOrderRequest{
		Type:             model.OrderSales,
		CustomerSupplier: "Acme",
		Status:           model.OrderPending,
		Items:            []OrderItemRequest{{ProductID: product.ID.String(), Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(order.ID))

	var itemCount int64
	db.Unscoped().Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.Zero(t, itemCount)

	_, err = svc.GetOrder(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	assert.ErrorIs(t, svc.DeleteOrder(uuid.New()), ErrOrderNotFound)
}
