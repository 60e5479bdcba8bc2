package handlers

import (
	"Pasikuthu/domain"
	"Pasikuthu/internal/api/presenters"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type donationServiceMock struct {
	GetDonationsFunc           func(ctx context.Context, filter domain.FilterState) domain.DonationView
	CreateDonationFunc         func(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error)
	UpdateDonationQuantityFunc func(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.Donation, error)
	DeleteDonationFunc         func(ctx context.Context, id string) error
	ReloadDonationsFunc        func(ctx context.Context) error

	lastFilter domain.FilterState
}

func (m *donationServiceMock) GetDonations(ctx context.Context, filter domain.FilterState) domain.DonationView {
	m.lastFilter = filter
	if m.GetDonationsFunc == nil {
		return domain.DonationView{Donations: []domain.Donation{}}
	}
	return m.GetDonationsFunc(ctx, filter)
}

func (m *donationServiceMock) GetCollectionStatus(ctx context.Context) domain.CollectionStatus {
	return domain.CollectionStatus{PendingIDs: []string{}}
}

func (m *donationServiceMock) CreateDonation(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error) {
	return m.CreateDonationFunc(ctx, req)
}

func (m *donationServiceMock) UpdateDonationQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.Donation, error) {
	return m.UpdateDonationQuantityFunc(ctx, id, req)
}

func (m *donationServiceMock) DeleteDonation(ctx context.Context, id string) error {
	return m.DeleteDonationFunc(ctx, id)
}

func (m *donationServiceMock) ReloadDonations(ctx context.Context) error {
	return m.ReloadDonationsFunc(ctx)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newDonationApp(svc *donationServiceMock) *fiber.App {
	app := fiber.New()
	h := NewDonationHandler(svc, validator.New(), []string{"Chennai", "Mumbai"})
	app.Get("/donations", h.GetDonations)
	app.Post("/donations", h.CreateDonation)
	app.Patch("/donations/:id/quantity", h.UpdateDonationQuantity)
	app.Delete("/donations/:id", h.DeleteDonation)
	app.Post("/donations/reload", h.ReloadDonations)
	app.Get("/cities", h.GetCitySuggestions)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func strPtr(s string) *string { return &s }

func TestGetDonations_ParsesFilterAndPresentsContacts(t *testing.T) {
	svc := &donationServiceMock{
		GetDonationsFunc: func(ctx context.Context, filter domain.FilterState) domain.DonationView {
			return domain.DonationView{
				Donations: []domain.Donation{{
					ID:            "a",
					CreatedAt:     time.Now(),
					FoodName:      "Rice",
					Quantity:      0,
					ContactNumber: strPtr("+919876543210"),
				}},
				Stats:     domain.DonationStatistics{Total: 1, Finished: 1, DistinctLocations: 1},
				Locations: []string{"Nowheretown"},
			}
		},
	}
	app := newDonationApp(svc)

	code, env := do(t, app, http.MethodGet, "/donations?search=ric&location=Chennai&status=finished&sort=qty", "")

	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, domain.FilterState{
		SearchQuery:    "ric",
		LocationFilter: "Chennai",
		Status:         domain.StatusFinished,
		SortBy:         domain.SortByQuantity,
	}, svc.lastFilter)

	var data domain.GetDonationsResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Donations, 1)
	assert.True(t, data.Donations[0].Finished)
	assert.Equal(t, "+91 9876543210", data.Donations[0].ContactDisplay)
	assert.Equal(t, "https://wa.me/919876543210", data.Donations[0].ContactLink)
	assert.Equal(t, 1, data.Stats.Finished)
	assert.Equal(t, []string{"Nowheretown"}, data.Locations)
}

func TestGetDonations_RejectsUnknownStatus(t *testing.T) {
	app := newDonationApp(&donationServiceMock{})

	code, env := do(t, app, http.MethodGet, "/donations?status=expired", "")

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, domain.MessageInvalidStatusFilter, env.Error)
}

func TestCreateDonation_ValidationError(t *testing.T) {
	svc := &donationServiceMock{
		CreateDonationFunc: func(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error) {
			assert.Equal(t, "5", req.Quantity)
			return nil, domain.NewValidationError("food_name", domain.MessageFoodNameRequired)
		},
	}
	app := newDonationApp(svc)

	code, env := do(t, app, http.MethodPost, "/donations", `{"food_name":"","qty":"5"}`)

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.False(t, env.Status)
	assert.Equal(t, domain.MessageFoodNameRequired, env.Error)
}

func TestCreateDonation_Created(t *testing.T) {
	svc := &donationServiceMock{
		CreateDonationFunc: func(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error) {
			return &domain.Donation{ID: "new", FoodName: req.FoodName, Quantity: 5}, nil
		},
	}
	app := newDonationApp(svc)

	code, env := do(t, app, http.MethodPost, "/donations", `{"food_name":"Rice","qty":"5"}`)

	require.Equal(t, fiber.StatusCreated, code)
	var data domain.DonationResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "new", data.ID)
	assert.False(t, data.Finished)
	assert.Empty(t, data.ContactLink)
}

func TestUpdateDonationQuantity_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"in flight", domain.ErrMutationInFlight, fiber.StatusConflict},
		{"not found", domain.ErrDonationNotFound, fiber.StatusNotFound},
		{"remote", &domain.RemoteError{Op: "update donation", Err: errors.New("row locked")}, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &donationServiceMock{
				UpdateDonationQuantityFunc: func(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.Donation, error) {
					assert.Equal(t, "abc", id)
					assert.Equal(t, "3", req.Quantity)
					return nil, tt.err
				},
			}
			app := newDonationApp(svc)

			code, env := do(t, app, http.MethodPatch, "/donations/abc/quantity", `{"qty":"3"}`)

			assert.Equal(t, tt.want, code)
			assert.Equal(t, tt.err.Error(), env.Error)
			assert.Equal(t, tt.want, presenters.StatusFor(tt.err))
		})
	}
}

func TestDeleteDonation(t *testing.T) {
	var deleted string
	svc := &donationServiceMock{
		DeleteDonationFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	app := newDonationApp(svc)

	code, env := do(t, app, http.MethodDelete, "/donations/abc", "")

	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)
	assert.Equal(t, "abc", deleted)
}

func TestReloadDonations_NoSession(t *testing.T) {
	svc := &donationServiceMock{
		ReloadDonationsFunc: func(ctx context.Context) error { return domain.ErrNoSession },
	}
	app := newDonationApp(svc)

	code, _ := do(t, app, http.MethodPost, "/donations/reload", "")

	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestGetCitySuggestions(t *testing.T) {
	app := newDonationApp(&donationServiceMock{})

	code, env := do(t, app, http.MethodGet, "/cities", "")

	require.Equal(t, fiber.StatusOK, code)
	var data struct {
		Cities []string `json:"cities"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"Chennai", "Mumbai"}, data.Cities)
}
