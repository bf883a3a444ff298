package budgetService

import (
	"time"

	"ChiTieuBackend/internal/api/budget"
	budgetRepository "ChiTieuBackend/internal/api/budget/repository"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/nlp"
	"ChiTieuBackend/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IBudgetService interface {
	ApplyBudgetOperation(ctx context.Context, userID string, op nlp.Operation, now time.Time) (entity.MonthlyBudget, error)
	ApplyCategoryBudgetOperation(ctx context.Context, userID string, op nlp.Operation, now time.Time) error
	DeleteAllCategoryBudgets(ctx context.Context, userID string, month, year int) error

	SetBudget(ctx context.Context, req budget.SetBudgetRequest) (entity.MonthlyBudget, error)
	DeleteBudget(ctx context.Context, userID string, month, year int) error
	GetOverview(ctx context.Context, userID string, month, year int) (budget.BudgetOverviewResponse, error)
	SetCategoryBudget(ctx context.Context, req budget.SetCategoryBudgetRequest) error
	DeleteCategoryBudget(ctx context.Context, userID, category string, month, year int) error
	GetHistory(ctx context.Context, userID string, limit int) ([]entity.BudgetHistoryEntry, error)
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	utils            utils.IUtils
}

func New(log *logrus.Logger, br budgetRepository.Repository, utils utils.IUtils) IBudgetService {
	return &budgetService{
		log:              log,
		budgetRepository: br,
		utils:            utils,
	}
}
