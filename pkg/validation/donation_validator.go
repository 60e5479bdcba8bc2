package validation

import (
	"Pasikuthu/domain"
	"Pasikuthu/pkg/normalize"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type (
	DonationValidator interface {
		ValidateDonationForm(req domain.DonationRequest) (*domain.DonationPayload, error)
		ValidateQuantityUpdate(raw string, current int) (qty int, changed bool, err error)
	}

	donationValidator struct {
		validate        *validator.Validate
		knownCities     []string
		contactRequired bool
	}
)

func NewDonationValidator(validate *validator.Validate, knownCities []string, contactRequired bool) DonationValidator {
	return &donationValidator{
		validate:        validate,
		knownCities:     knownCities,
		contactRequired: contactRequired,
	}
}

// ValidateDonationForm checks fields in form order and stops at the first failure.
func (v *donationValidator) ValidateDonationForm(req domain.DonationRequest) (*domain.DonationPayload, error) {
	foodName := strings.TrimSpace(req.FoodName)
	if err := v.validate.Var(foodName, "required"); err != nil {
		return nil, domain.NewValidationError("food_name", domain.MessageFoodNameRequired)
	}

	qty, ok := parseQuantity(req.Quantity)
	if !ok || v.validate.Var(qty, "gt=0") != nil {
		return nil, domain.NewValidationError("qty", domain.MessageQuantityGreaterThanZero)
	}
	if qty != math.Trunc(qty) || qty > math.MaxInt32 {
		return nil, domain.NewValidationError("qty", domain.MessageQuantityWholeNumber)
	}

	var contact *string
	digits := normalize.Digits(req.ContactNumber)
	if v.contactRequired {
		if err := v.validate.Var(digits, "len=10"); err != nil {
			return nil, domain.NewValidationError("contact_number", domain.MessageContactNumberTenDigits)
		}
	}
	if canonical, ok := normalize.NormalizePhone(digits); ok {
		contact = &canonical
	}

	var location *string
	if city, ok := normalize.NormalizeLocation(req.Location, v.knownCities); ok {
		location = &city
	}

	return &domain.DonationPayload{
		FoodName:      foodName,
		Description:   optional(req.Description),
		Quantity:      int(qty),
		DonorName:     optional(req.DonorName),
		Location:      location,
		ContactNumber: contact,
	}, nil
}

// ValidateQuantityUpdate returns changed=false for blank input and for a value
// equal to the current quantity; neither should reach the remote store.
func (v *donationValidator) ValidateQuantityUpdate(raw string, current int) (int, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return current, false, nil
	}

	qty, ok := parseQuantity(raw)
	if !ok || v.validate.Var(qty, "gte=0") != nil || qty != math.Trunc(qty) || qty > math.MaxInt32 {
		return current, false, domain.NewValidationError("qty", domain.MessageQuantityZeroOrPositive)
	}

	next := int(qty)
	if next == current {
		return current, false, nil
	}
	return next, true, nil
}

func parseQuantity(raw string) (float64, bool) {
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, false
	}
	return qty, true
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
