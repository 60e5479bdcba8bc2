package handlers

import (
	"Pasikuthu/domain"
	"Pasikuthu/internal/api/presenters"
	"Pasikuthu/pkg/donation"
	"Pasikuthu/pkg/normalize"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		GetDonations(c *fiber.Ctx) error
		CreateDonation(c *fiber.Ctx) error
		UpdateDonationQuantity(c *fiber.Ctx) error
		DeleteDonation(c *fiber.Ctx) error
		ReloadDonations(c *fiber.Ctx) error
		GetCitySuggestions(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
		cities          []string
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate, cities []string) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
		cities:          cities,
	}
}

func (h *donationHandler) GetDonations(c *fiber.Ctx) error {
	status, err := domain.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}
	sortBy, err := domain.ParseSortKey(c.Query("sort"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}

	filter := domain.FilterState{
		SearchQuery:    c.Query("search"),
		LocationFilter: c.Query("location"),
		Status:         status,
		SortBy:         sortBy,
	}

	view := h.donationService.GetDonations(c.Context(), filter)
	res := domain.GetDonationsResponse{
		Donations: presentDonations(view.Donations),
		Stats:     view.Stats,
		Locations: view.Locations,
		Filter:    filter,
		Status:    h.donationService.GetCollectionStatus(c.Context()),
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	var req domain.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	created, err := h.donationService.CreateDonation(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedCreateDonation, err)
	}
	return presenters.SuccessResponse(c, presentDonation(*created), fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) UpdateDonationQuantity(c *fiber.Ctx) error {
	var req domain.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	updated, err := h.donationService.UpdateDonationQuantity(c.Context(), c.Params("id"), req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedUpdateDonation, err)
	}
	return presenters.SuccessResponse(c, presentDonation(*updated), fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) DeleteDonation(c *fiber.Ctx) error {
	if err := h.donationService.DeleteDonation(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedDeleteDonation, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}

func (h *donationHandler) ReloadDonations(c *fiber.Ctx) error {
	if err := h.donationService.ReloadDonations(c.Context()); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedReloadDonations, err)
	}
	return presenters.SuccessResponse(c, h.donationService.GetCollectionStatus(c.Context()), fiber.StatusOK, domain.MessageSuccessReloadDonations)
}

func (h *donationHandler) GetCitySuggestions(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"cities": h.cities,
	}, fiber.StatusOK, domain.MessageSuccessGetCities)
}

func presentDonations(donations []domain.Donation) []domain.DonationResponse {
	res := make([]domain.DonationResponse, 0, len(donations))
	for _, d := range donations {
		res = append(res, presentDonation(d))
	}
	return res
}

func presentDonation(d domain.Donation) domain.DonationResponse {
	res := domain.DonationResponse{
		Donation: d,
		Finished: d.IsFinished(),
	}
	if d.ContactNumber != nil && *d.ContactNumber != "" {
		res.ContactDisplay = normalize.DisplayPhone(*d.ContactNumber)
		if link, ok := normalize.BuildContactLink(*d.ContactNumber); ok {
			res.ContactLink = link
		}
	}
	return res
}
