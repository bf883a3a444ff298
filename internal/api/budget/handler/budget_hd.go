package budgetHandler

import (
	"errors"
	"net/url"
	"time"

	"ChiTieuBackend/internal/api/budget"
	contextPkg "ChiTieuBackend/pkg/context"
	"ChiTieuBackend/pkg/handlerUtil"
	jwtPkg "ChiTieuBackend/pkg/jwt"
	"ChiTieuBackend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BudgetHandler) SetBudget(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing set budget request")

	var req budget.SetBudgetRequest
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

	b, err := h.budgetService.SetBudget(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_budget")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, budget.BudgetResponse{
			Month:       b.Month,
			Year:        b.Year,
			LimitAmount: b.LimitAmount,
		})
	}
}

func (h *BudgetHandler) DeleteBudget(ctx *fiber.Ctx) error {
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

	if err := h.budgetService.DeleteBudget(c, userData.ID, month, year); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_budget")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Budget deleted successfully",
	})
}

func (h *BudgetHandler) GetOverview(ctx *fiber.Ctx) error {
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

	overview, err := h.budgetService.GetOverview(c, userData.ID, month, year)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_budget_overview")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, overview)
}

func (h *BudgetHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	limit := ctx.QueryInt("limit", 20)

	entries, err := h.budgetService.GetHistory(c, userData.ID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_budget_history")
	}

	responses := make([]budget.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, budget.HistoryEntryResponse{
			Action:      e.Action,
			Scope:       e.Scope,
			Category:    e.Category,
			Amount:      e.Amount,
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"history": responses,
	})
}

func (h *BudgetHandler) SetCategoryBudget(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req budget.SetCategoryBudgetRequest
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

	if err := h.budgetService.SetCategoryBudget(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_category_budget")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Category budget saved successfully",
		})
	}
}

func (h *BudgetHandler) DeleteCategoryBudget(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	category := ctx.Params("category")
	if decoded, decErr := url.PathUnescape(category); decErr == nil {
		category = decoded
	}
	if category == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("category is required"), ctx.Path())
	}

	month, year, err := monthYearQuery(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.budgetService.DeleteCategoryBudget(c, userData.ID, category, month, year); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_category_budget")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Category budget deleted successfully",
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
		return 0, 0, errors.New("year must be 2000 or later")
	}

	return month, year, nil
}
