package budgetHandler

import (
	budgetService "ChiTieuBackend/internal/api/budget/service"
	"ChiTieuBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	budgetService budgetService.IBudgetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	budgetService budgetService.IBudgetService,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budgets := srv.Group("/budgets")

	budgets.Put("/", h.middleware.NewTokenMiddleware, h.SetBudget)
	budgets.Delete("/", h.middleware.NewTokenMiddleware, h.DeleteBudget)
	budgets.Get("/overview", h.middleware.NewTokenMiddleware, h.GetOverview)
	budgets.Get("/history", h.middleware.NewTokenMiddleware, h.GetHistory)
	budgets.Put("/categories", h.middleware.NewTokenMiddleware, h.SetCategoryBudget)
	budgets.Delete("/categories/:category", h.middleware.NewTokenMiddleware, h.DeleteCategoryBudget)
}
