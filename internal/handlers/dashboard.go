package handlers

import (
	"errors"
	"log"

	"veridian/internal/middleware"
	"veridian/internal/repositories"
	"veridian/internal/services/dashboard"
	"veridian/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(s dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetBalance serves the balance card.
func (h *DashboardHandler) GetBalance(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	view, err := h.service.Balance(c.Context(), clerkID)
	if err != nil {
		if errors.Is(err, repositories.ErrKYCNotFound) {
			return utils.NotFound(c, "complete KYC to view your balance")
		}
		log.Printf("balance fetch error for %s: %v", clerkID, err)
		return utils.InternalError(c, "Failed to fetch balance")
	}
	return utils.Success(c, view)
}

// GetTransactions serves the transaction history, newest first.
func (h *DashboardHandler) GetTransactions(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	txs, err := h.service.History(c.Context(), clerkID)
	if err != nil {
		log.Printf("history fetch error for %s: %v", clerkID, err)
		return utils.InternalError(c, "Failed to fetch transactions")
	}
	return utils.Success(c, fiber.Map{"transactions": txs})
}
