package handlers

import (
	"errors"
	"log"

	"veridian/internal/middleware"
	"veridian/internal/services/deposit"
	"veridian/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DepositHandler struct {
	service deposit.Service
}

func NewDepositHandler(s deposit.Service) *DepositHandler {
	return &DepositHandler{service: s}
}

// GetAddress serves the crypto deposit address.
func (h *DepositHandler) GetAddress(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"address": h.service.Address()})
}

// CardDeposit tokenizes a card and records a pending topup.
func (h *DepositHandler) CardDeposit(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	var input struct {
		CardNumber  string `json:"card_number"`
		ExpiryMonth string `json:"expiry_month"`
		ExpiryYear  string `json:"expiry_year"`
		Amount      string `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be a numeric string")
	}

	tx, err := h.service.CardDeposit(c.Context(), clerkID, deposit.CardInput{
		CardNumber:  input.CardNumber,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
		Amount:      amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, deposit.ErrInvalidAmount), errors.Is(err, deposit.ErrInvalidCard):
			return utils.BadRequest(c, err.Error())
		default:
			log.Printf("card deposit error for %s: %v", clerkID, err)
			return utils.InternalError(c, "Failed to process deposit")
		}
	}

	return utils.Created(c, fiber.Map{
		"message":   "Deposit submitted",
		"reference": tx.Reference,
		"amount":    tx.Amount.StringFixed(2),
	})
}
