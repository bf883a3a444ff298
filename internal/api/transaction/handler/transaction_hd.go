package transactionHandler

import (
	"errors"
	"strconv"
	"time"

	"ChiTieuBackend/internal/api/transaction"
	contextPkg "ChiTieuBackend/pkg/context"
	"ChiTieuBackend/pkg/handlerUtil"
	jwtPkg "ChiTieuBackend/pkg/jwt"
	"ChiTieuBackend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *TransactionHandler) CreateTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create transaction request")

	var req transaction.CreateTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}
	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	id, err := h.transactionService.Create(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"message": "Transaction created successfully",
			"id":      id,
		})
	}
}

func (h *TransactionHandler) GetTransactionByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("transaction ID must be numeric"), ctx.Path())
	}

	item, err := h.transactionService.GetByID(c, userData.ID, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_transaction")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, transaction.TransactionResponse{
		ID:          item.ID,
		Description: item.Description,
		Category:    item.Category,
		Amount:      item.Amount,
		Type:        item.Type,
		Date:        item.Date.Format("2006-01-02"),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	})
}

func (h *TransactionHandler) GetRecentTransactions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	limit := ctx.QueryInt("limit", 20)

	items, err := h.transactionService.GetRecent(c, userData.ID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_recent_transactions")
	}

	responses := make([]transaction.TransactionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, transaction.TransactionResponse{
			ID:          item.ID,
			Description: item.Description,
			Category:    item.Category,
			Amount:      item.Amount,
			Type:        item.Type,
			Date:        item.Date.Format("2006-01-02"),
			CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		})
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"transactions": responses,
	})
}

func (h *TransactionHandler) ListTransactionsByMonth(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	month, year, err := monthYearQuery(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.transactionService.ListByMonth(c, userData.ID, month, year)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_transactions")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *TransactionHandler) GetMonthlySummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	month, year, err := monthYearQuery(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.transactionService.MonthlySummary(c, userData.ID, month, year)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_monthly_summary")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *TransactionHandler) DeleteTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("transaction ID must be numeric"), ctx.Path())
	}

	if err := h.transactionService.Delete(c, userData.ID, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_transaction")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Transaction deleted successfully",
	})
}

func monthYearQuery(ctx *fiber.Ctx) (int, int, error) {
	now := time.Now()
	month := ctx.QueryInt("month", int(now.Month()))
	year := ctx.QueryInt("year", now.Year())

	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	if year < 2000 {
		return 0, 0, errors.New("year is out of range")
	}
	return month, year, nil
}
