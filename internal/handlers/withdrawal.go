package handlers

import (
	"errors"
	"log"

	"veridian/internal/middleware"
	"veridian/internal/services/withdrawal"
	"veridian/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	service withdrawal.Service
}

func NewWithdrawalHandler(s withdrawal.Service) *WithdrawalHandler {
	return &WithdrawalHandler{service: s}
}

// RequestWithdrawal records a pending withdrawal for the caller.
func (h *WithdrawalHandler) RequestWithdrawal(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	var input struct {
		Amount string `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be a numeric string")
	}

	tx, err := h.service.Request(c.Context(), clerkID, amount)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrInvalidAmount),
			errors.Is(err, withdrawal.ErrInsufficientBalance):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, withdrawal.ErrNotApproved):
			return utils.Respond(c, fiber.StatusForbidden, fiber.Map{"error": err.Error()})
		default:
			log.Printf("withdrawal request error for %s: %v", clerkID, err)
			return utils.InternalError(c, "Failed to request withdrawal")
		}
	}

	return utils.Created(c, fiber.Map{
		"message":   "Withdrawal request submitted",
		"reference": tx.Reference,
		"amount":    tx.Amount.StringFixed(2),
	})
}

// GetPendingAmount serves the total of the caller's unsettled withdrawals,
// which the balance card subtracts from the balance.
func (h *WithdrawalHandler) GetPendingAmount(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	amount, err := h.service.PendingAmount(c.Context(), clerkID)
	if err != nil {
		log.Printf("pending withdrawal fetch error for %s: %v", clerkID, err)
		return utils.InternalError(c, "Failed to fetch withdrawal amount")
	}
	return utils.Success(c, fiber.Map{"amount": amount.StringFixed(2)})
}
