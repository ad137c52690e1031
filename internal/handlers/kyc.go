package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"veridian/internal/middleware"
	"veridian/internal/models"
	"veridian/internal/services/kyc"
	"veridian/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type KYCHandler struct {
	service kyc.Service
}

func NewKYCHandler(s kyc.Service) *KYCHandler { return &KYCHandler{service: s} }

// SubmitKYC handles a multipart KYC submission.
func (h *KYCHandler) SubmitKYC(c *fiber.Ctx) error {
	input := kyc.SubmissionInput{
		ClerkID:    c.FormValue("clerkId"),
		FirstName:  c.FormValue("firstName"),
		LastName:   c.FormValue("lastName"),
		Email:      c.FormValue("email"),
		Country:    c.FormValue("country"),
		State:      c.FormValue("state"),
		Investment: c.FormValue("investment"),
	}

	// Absent files stay zero-sized; validation reports them together with
	// any missing text fields.
	if doc, err := readFormFile(c, "idCardFile"); err == nil {
		input.IDCard = doc
	}
	if doc, err := readFormFile(c, "passportFile"); err == nil {
		input.Passport = doc
	}

	result, err := h.service.Submit(c.Context(), input)
	if err != nil {
		var vErr *kyc.ValidationError
		switch {
		case errors.As(err, &vErr):
			return utils.BadRequest(c, vErr.Error())
		case errors.Is(err, kyc.ErrFileTooLarge):
			return utils.BadRequest(c, "File size too large. Maximum size is 10MB.")
		case errors.Is(err, kyc.ErrDuplicateSubmission):
			return utils.Conflict(c, "KYC application already exists for this user.")
		default:
			log.Printf("kyc submission error: %v", err)
			return utils.InternalError(c, "Internal server error. Please try again later.")
		}
	}

	message := "KYC Submitted Successfully"
	if result.IsReapplication {
		message = "KYC Updated Successfully"
	}
	return utils.Created(c, fiber.Map{
		"message":         message,
		"accountNumber":   result.AccountNumber,
		"isReapplication": result.IsReapplication,
	})
}

// GetAllKYC lists every record, newest first.
func (h *KYCHandler) GetAllKYC(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context())
	if err != nil {
		log.Printf("error fetching kyc records: %v", err)
		return utils.InternalError(c, "Failed to fetch KYC data")
	}

	dtos := make([]models.KYCRecordDTO, len(records))
	for i := range records {
		dtos[i] = records[i].DTO()
	}
	return utils.Success(c, fiber.Map{"kyc": dtos})
}

// GetStatus returns the caller's record and its dashboard display state.
func (h *KYCHandler) GetStatus(c *fiber.Ctx) error {
	clerkID := middleware.ClerkID(c)

	record, err := h.service.Record(c.Context(), clerkID)
	if err != nil {
		if errors.Is(err, kyc.ErrRecordNotFound) {
			return utils.NotFound(c, "no KYC record for this user")
		}
		log.Printf("error fetching kyc status for %s: %v", clerkID, err)
		return utils.InternalError(c, "Failed to fetch KYC status")
	}

	return utils.Success(c, fiber.Map{
		"record":  record.DTO(),
		"display": record.Approve.Display(),
	})
}

func readFormFile(c *fiber.Ctx, field string) (kyc.Document, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return kyc.Document{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return kyc.Document{}, err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return kyc.Document{}, err
	}
	return kyc.Document{Filename: fh.Filename, Data: data}, nil
}
