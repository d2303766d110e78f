package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
	"support-desk-api/middleware"
	"support-desk-api/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionHandler struct {
	usecase.TransactionUsecase
	*logrus.Logger
}

func NewTransactionHandler(transactionUsecase usecase.TransactionUsecase, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{TransactionUsecase: transactionUsecase, Logger: logger}
}

// CreateCardTransaction godoc
// @Summary Record a gift card transaction on a pending customer chat
// @Tags Agent
// @Accept json
// @Produce json
// @Success 201 {object} res.CommonResponse[res.TransactionResponse]
// @Router /api/v1/agent/transactions/card [post]
func (handler *TransactionHandler) CreateCardTransaction(c *fiber.Ctx) error {
	payload := new(req.CreateCardTransactionRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	transaction, err := handler.TransactionUsecase.CreateCardTransaction(c.Context(), middleware.Caller(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to create card transaction")
		return err
	}
	return created(c, transaction)
}

// CreateCryptoTransaction godoc
// @Summary Record a crypto transaction on a pending customer chat
// @Tags Agent
// @Accept json
// @Produce json
// @Success 201 {object} res.CommonResponse[res.TransactionResponse]
// @Router /api/v1/agent/transactions/crypto [post]
func (handler *TransactionHandler) CreateCryptoTransaction(c *fiber.Ctx) error {
	payload := new(req.CreateCryptoTransactionRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	transaction, err := handler.TransactionUsecase.CreateCryptoTransaction(c.Context(), middleware.Caller(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to create crypto transaction")
		return err
	}
	return created(c, transaction)
}

func created(c *fiber.Ctx, transaction res.TransactionResponse) error {
	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.TransactionResponse]{
		Status:  fiber.StatusCreated,
		Data:    transaction,
		Message: "Transaction created successfully",
	})
}

// GetTransactions godoc
// @Summary List transactions, newest first
// @Tags Admin
// @Produce json
// @Param status query string false "pending, approved or declined"
// @Param type query string false "card or crypto"
// @Param agentId query int false "agent id"
// @Router /api/v1/admin/transactions [get]
func (handler *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := req.TransactionFilter{}
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	transactions, err := handler.TransactionUsecase.GetTransactions(c.Context(), middleware.Caller(c), filter)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get transactions")
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]entity.Transaction]{
		Status:  fiber.StatusOK,
		Data:    transactions,
		Message: "Transactions fetched successfully",
	})
}

// ExportTransactions godoc
// @Summary Download the filtered transactions as an xlsx workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/v1/admin/transactions/export [get]
func (handler *TransactionHandler) ExportTransactions(c *fiber.Ctx) error {
	filter := req.TransactionFilter{}
	if err := c.QueryParser(&filter); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	workbook, err := handler.TransactionUsecase.ExportTransactions(c.Context(), middleware.Caller(c), filter)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to export transactions")
		return err
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(workbook)
}
