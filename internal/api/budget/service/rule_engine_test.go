package budgetService

import (
	"io"
	"testing"
	"time"

	"ChiTieuBackend/internal/api/budget"
	budgetRepository "ChiTieuBackend/internal/api/budget/repository"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/nlp"
	"ChiTieuBackend/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type monthKey struct {
	month int
	year  int
}

type categoryKey struct {
	category string
	month    int
	year     int
}

// fakeRepository backs the service with in-memory maps so the engine's
// rules can be exercised without a database.
type fakeRepository struct {
	budgets    map[monthKey]entity.MonthlyBudget
	categories map[categoryKey]entity.CategoryBudget
	history    []entity.BudgetHistoryEntry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		budgets:    map[monthKey]entity.MonthlyBudget{},
		categories: map[categoryKey]entity.CategoryBudget{},
	}
}

func (f *fakeRepository) NewClient(tx bool) (budgetRepository.Client, error) {
	return budgetRepository.Client{
		Budgets:         (*fakeBudgets)(f),
		CategoryBudgets: (*fakeCategoryBudgets)(f),
		History:         (*fakeHistory)(f),
		Commit:          func() error { return nil },
		Rollback:        func() error { return nil },
	}, nil
}

type fakeBudgets fakeRepository

func (f *fakeBudgets) GetForMonth(_ context.Context, _ string, month, year int) (entity.MonthlyBudget, error) {
	b, ok := f.budgets[monthKey{month, year}]
	if !ok {
		return entity.MonthlyBudget{}, budget.ErrBudgetNotFound
	}
	return b, nil
}

func (f *fakeBudgets) Upsert(_ context.Context, b entity.MonthlyBudget) error {
	f.budgets[monthKey{b.Month, b.Year}] = b
	return nil
}

func (f *fakeBudgets) Delete(_ context.Context, _ string, month, year int) error {
	key := monthKey{month, year}
	if _, ok := f.budgets[key]; !ok {
		return budget.ErrBudgetNotFound
	}
	delete(f.budgets, key)
	return nil
}

type fakeCategoryBudgets fakeRepository

func (f *fakeCategoryBudgets) Get(_ context.Context, _ string, category string, month, year int) (entity.CategoryBudget, error) {
	cb, ok := f.categories[categoryKey{category, month, year}]
	if !ok {
		return entity.CategoryBudget{}, budget.ErrCategoryBudgetNotFound
	}
	return cb, nil
}

func (f *fakeCategoryBudgets) GetAllForMonth(_ context.Context, _ string, month, year int) ([]entity.CategoryBudget, error) {
	var out []entity.CategoryBudget
	for key, cb := range f.categories {
		if key.month == month && key.year == year {
			out = append(out, cb)
		}
	}
	return out, nil
}

func (f *fakeCategoryBudgets) Upsert(_ context.Context, cb entity.CategoryBudget) error {
	f.categories[categoryKey{cb.Category, cb.Month, cb.Year}] = cb
	return nil
}

func (f *fakeCategoryBudgets) Delete(_ context.Context, _ string, category string, month, year int) error {
	key := categoryKey{category, month, year}
	if _, ok := f.categories[key]; !ok {
		return budget.ErrCategoryBudgetNotFound
	}
	delete(f.categories, key)
	return nil
}

func (f *fakeCategoryBudgets) DeleteAllForMonth(_ context.Context, _ string, month, year int) error {
	for key := range f.categories {
		if key.month == month && key.year == year {
			delete(f.categories, key)
		}
	}
	return nil
}

type fakeHistory fakeRepository

func (f *fakeHistory) Append(_ context.Context, e entity.BudgetHistoryEntry) error {
	f.history = append(f.history, e)
	return nil
}

func (f *fakeHistory) List(_ context.Context, _ string, limit int) ([]entity.BudgetHistoryEntry, error) {
	if limit > len(f.history) {
		limit = len(f.history)
	}
	out := make([]entity.BudgetHistoryEntry, limit)
	copy(out, f.history[len(f.history)-limit:])
	return out, nil
}

func newTestService(repo *fakeRepository) IBudgetService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, repo, utils.New())
}

var engineNow = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func budgetOp(kind nlp.OperationKind, amount int64, month, year int) nlp.Operation {
	return nlp.Operation{Kind: kind, Amount: amount, Month: month, Year: year}
}

func TestApplyBudgetOperation_SetIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	second, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5_000_000), second.LimitAmount)
	assert.Len(t, repo.budgets, 1)

	require.Len(t, repo.history, 2)
	assert.Equal(t, string(entity.BudgetHistoryActionCreate), repo.history[0].Action)
	assert.Equal(t, string(entity.BudgetHistoryActionUpdate), repo.history[1].Action)
}

func TestApplyBudgetOperation_IncreaseThenDecreaseFloorsAtZero(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 10_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	b, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetIncrease, 2_000_000, 6, 2025), engineNow)
	require.NoError(t, err)
	assert.Equal(t, int64(12_000_000), b.LimitAmount)

	b, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetDecrease, 15_000_000, 6, 2025), engineNow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.LimitAmount)
}

func TestApplyBudgetOperation_AdjustWithoutBudget(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetIncrease, 2_000_000, 6, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrNoBudgetToAdjust)

	_, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetDecrease, 2_000_000, 6, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrNoBudgetToAdjust)
}

func TestApplyBudgetOperation_PastMonthRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 5, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrPastMonth)

	_, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 12, 2024), engineNow)
	assert.ErrorIs(t, err, budget.ErrPastMonth)

	// Later months of the current year and any future year are allowed.
	_, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 1, 2026), engineNow)
	assert.NoError(t, err)
}

func TestApplyBudgetOperation_Delete(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	_, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetDelete, 0, 6, 2025), engineNow)
	require.NoError(t, err)
	assert.Empty(t, repo.budgets)

	_, err = svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetDelete, 0, 6, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func categoryOp(category entity.Category, amount int64, month, year int) nlp.Operation {
	return nlp.Operation{
		Kind:     nlp.OpCategoryBudgetSet,
		Category: string(category),
		Amount:   amount,
		Month:    month,
		Year:     year,
	}
}

func TestApplyCategoryBudgetOperation_CapAgainstMonthlyLimit(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	err = svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryHousing, 4_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	// 4M already allocated elsewhere; another 1.5M would overflow the 5M limit.
	err = svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryFoodHome, 1_500_000, 6, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrOverAllocation)

	// The rejected item must not block a smaller sibling.
	err = svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryTransport, 800_000, 6, 2025), engineNow)
	assert.NoError(t, err)
}

func TestApplyCategoryBudgetOperation_ReplaceExcludesOwnOldAmount(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ApplyBudgetOperation(ctx, "user-1", budgetOp(nlp.OpBudgetSet, 5_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	err = svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryFoodHome, 4_000_000, 6, 2025), engineNow)
	require.NoError(t, err)

	// Re-setting the same category replaces its allocation rather than
	// counting the old amount against the limit.
	err = svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryFoodHome, 4_500_000, 6, 2025), engineNow)
	require.NoError(t, err)

	cb := repo.categories[categoryKey{string(entity.CategoryFoodHome), 6, 2025}]
	assert.Equal(t, int64(4_500_000), cb.Amount)
}

func TestApplyCategoryBudgetOperation_NoLimitMeansNoCap(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	err := svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryTravel, 50_000_000, 6, 2025), engineNow)
	assert.NoError(t, err)
}

func TestApplyCategoryBudgetOperation_UnknownCategory(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	err := svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp("Không tồn tại", 500_000, 6, 2025), engineNow)
	assert.ErrorIs(t, err, budget.ErrInvalidCategory)
}

func TestDeleteAllCategoryBudgets(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryFoodHome, 2_000_000, 6, 2025), engineNow))
	require.NoError(t, svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryTransport, 300_000, 6, 2025), engineNow))
	require.NoError(t, svc.ApplyCategoryBudgetOperation(ctx, "user-1", categoryOp(entity.CategoryFoodHome, 2_000_000, 7, 2025), engineNow))

	require.NoError(t, svc.DeleteAllCategoryBudgets(ctx, "user-1", 6, 2025))

	assert.Len(t, repo.categories, 1)
	_, survives := repo.categories[categoryKey{string(entity.CategoryFoodHome), 7, 2025}]
	assert.True(t, survives)
}
