package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessCreateDonation  = "donation created successfully"
	MessageSuccessUpdateDonation  = "donation updated successfully"
	MessageSuccessDeleteDonation  = "donation deleted successfully"
	MessageSuccessReloadDonations = "donations reloaded successfully"
	MessageSuccessGetCities       = "city suggestions retrieved successfully"

	MessageFailedGetDonations    = "failed to retrieve donations"
	MessageFailedCreateDonation  = "failed to create donation"
	MessageFailedUpdateDonation  = "failed to update donation"
	MessageFailedDeleteDonation  = "failed to delete donation"
	MessageFailedReloadDonations = "failed to reload donations"

	MessageFoodNameRequired        = "Food name is required"
	MessageQuantityGreaterThanZero = "Quantity must be greater than zero"
	MessageQuantityWholeNumber     = "Quantity must be a whole number"
	MessageContactNumberTenDigits  = "Contact number must be exactly 10 digits"
	MessageQuantityZeroOrPositive  = "Quantity must be zero or a positive number"
	MessageInvalidStatusFilter     = "status must be one of all, active, finished"
	MessageInvalidSortKey          = "sort must be one of date, quantity, name"

	ErrDonationNotFound = errors.New("donation not found")
)

type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusFinished StatusFilter = "finished"
)

type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByQuantity SortKey = "quantity"
	SortByName     SortKey = "name"
)

type (
	Donation struct {
		ID            string    `json:"id"`
		CreatedAt     time.Time `json:"created_at"`
		FoodName      string    `json:"food_name"`
		Description   *string   `json:"description"`
		Quantity      int       `json:"qty"`
		DonorName     *string   `json:"name"`
		Location      *string   `json:"location"`
		ContactNumber *string   `json:"contact_number"`
	}

	// DonationRequest carries the raw form input; Quantity is kept as typed so the
	// validator can reject non-numeric input with the form's own message.
	DonationRequest struct {
		FoodName      string `json:"food_name"`
		Description   string `json:"description"`
		Quantity      string `json:"qty"`
		DonorName     string `json:"name"`
		Location      string `json:"location"`
		ContactNumber string `json:"contact_number"`
	}

	// DonationPayload is a validated, normalised DonationRequest ready for insert.
	DonationPayload struct {
		FoodName      string
		Description   *string
		Quantity      int
		DonorName     *string
		Location      *string
		ContactNumber *string
	}

	UpdateQuantityRequest struct {
		Quantity string `json:"qty"`
	}

	FilterState struct {
		SearchQuery    string       `json:"search"`
		LocationFilter string       `json:"location"`
		Status         StatusFilter `json:"status"`
		SortBy         SortKey      `json:"sort"`
	}

	DonationStatistics struct {
		Total             int `json:"total"`
		Active            int `json:"active"`
		Finished          int `json:"finished"`
		TotalQuantity     int `json:"total_quantity"`
		DistinctLocations int `json:"distinct_locations"`
	}

	DonationView struct {
		Donations []Donation         `json:"donations"`
		Stats     DonationStatistics `json:"stats"`
		Locations []string           `json:"locations"`
	}

	DonationResponse struct {
		Donation
		ContactDisplay string `json:"contact_display,omitempty"`
		ContactLink    string `json:"contact_link,omitempty"`
		Finished       bool   `json:"finished"`
	}

	GetDonationsResponse struct {
		Donations []DonationResponse `json:"donations"`
		Stats     DonationStatistics `json:"stats"`
		Locations []string           `json:"locations"`
		Filter    FilterState        `json:"filter"`
		Status    CollectionStatus   `json:"status"`
	}

	// CollectionStatus is what the UI needs besides the records themselves.
	CollectionStatus struct {
		Loading    bool     `json:"loading"`
		LoadError  string   `json:"load_error,omitempty"`
		Notice     string   `json:"notice,omitempty"`
		PendingIDs []string `json:"pending_ids"`
	}
)

func (d Donation) IsFinished() bool {
	return d.Quantity == 0
}

func DefaultFilterState() FilterState {
	return FilterState{Status: StatusAll, SortBy: SortByDate}
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusFinished:
		return StatusFinished, nil
	}
	return "", NewValidationError("status", MessageInvalidStatusFilter)
}

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortByDate):
		return SortByDate, nil
	case string(SortByQuantity), "qty":
		return SortByQuantity, nil
	case string(SortByName):
		return SortByName, nil
	}
	return "", NewValidationError("sort", MessageInvalidSortKey)
}
