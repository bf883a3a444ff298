package handlerUtil

import (
	"errors"

	"ChiTieuBackend/internal/api/auth"
	"ChiTieuBackend/internal/api/budget"
	"ChiTieuBackend/internal/api/transaction"
	"ChiTieuBackend/pkg/log"
	"ChiTieuBackend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// domainError pairs a sentinel with the stable machine-readable code the
// mobile client switches on.
type domainError struct {
	err     error
	status  int
	message string
	code    string
}

var domainErrors = []domainError{
	{auth.ErrUserNotFound, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND"},
	{auth.ErrDeviceTaken, fiber.StatusConflict, "Device is already registered to another account", "DEVICE_TAKEN"},
	{auth.ErrInvalidDevice, fiber.StatusBadRequest, "Invalid device identifier", "INVALID_DEVICE"},

	{transaction.ErrTransactionNotFound, fiber.StatusNotFound, "Transaction not found", "TRANSACTION_NOT_FOUND"},
	{transaction.ErrInvalidCategory, fiber.StatusBadRequest, "Category does not match the transaction type", "INVALID_CATEGORY"},
	{transaction.ErrInvalidAmount, fiber.StatusBadRequest, "Amount must be greater than zero", "INVALID_AMOUNT"},
	{transaction.ErrInvalidDate, fiber.StatusBadRequest, "Date must be YYYY-MM-DD", "INVALID_DATE"},

	{budget.ErrBudgetNotFound, fiber.StatusNotFound, "Budget not found", "BUDGET_NOT_FOUND"},
	{budget.ErrCategoryBudgetNotFound, fiber.StatusNotFound, "Category budget not found", "CATEGORY_BUDGET_NOT_FOUND"},
	{budget.ErrPastMonth, fiber.StatusBadRequest, "Budgets can only target the current month or later", "BUDGET_PAST_MONTH"},
	{budget.ErrNoBudgetToAdjust, fiber.StatusBadRequest, "No existing budget to adjust", "NO_BUDGET_TO_ADJUST"},
	{budget.ErrOverAllocation, fiber.StatusBadRequest, "Category allocations would exceed the monthly limit", "OVER_ALLOCATION"},
	{budget.ErrInvalidCategory, fiber.StatusBadRequest, "Unknown category", "UNKNOWN_CATEGORY"},
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			h.logger.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
				"path":       path,
				"operation":  operation,
			}).Warn(d.message)
			return c.Status(d.status).JSON(fiber.Map{
				"message": d.message,
				"code":    d.code,
			})
		}
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unhandled internal error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
		"code":  "INTERNAL_ERROR",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
