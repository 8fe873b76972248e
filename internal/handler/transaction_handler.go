package handler

import (
	"go-inventory-orders/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.LedgerService
}

func NewTransactionHandler(s service.LedgerService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// GetTransactions lists the ledger with server-side filtering/sorting.
// Query params: sortBy (date|amount), sortOrder (asc|desc),
// type (INBOUND|OUTBOUND|ADJUSTMENT, empty for all).
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetTransactions(
		c.Query("sortBy"),
		c.Query("sortOrder"),
		c.Query("type"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransaction(txID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.RecordTransaction(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transaction)
}
