package donation

import (
	"Pasikuthu/entities"
	"context"
	"sync"
)

// donationRepoMock is a hand-written DonationRepository with call recording.
type donationRepoMock struct {
	GetDonationsFunc           func(ctx context.Context) ([]*entities.Donation, error)
	CreateDonationFunc         func(ctx context.Context, donation *entities.Donation) (*entities.Donation, error)
	UpdateDonationQuantityFunc func(ctx context.Context, id string, qty int) ([]*entities.Donation, error)
	DeleteDonationFunc         func(ctx context.Context, id string) error

	mu          sync.Mutex
	getCalls    int
	createCalls []*entities.Donation
	updateCalls []int
	deleteCalls []string
}

func (m *donationRepoMock) GetDonations(ctx context.Context) ([]*entities.Donation, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.GetDonationsFunc == nil {
		return []*entities.Donation{}, nil
	}
	return m.GetDonationsFunc(ctx)
}

func (m *donationRepoMock) CreateDonation(ctx context.Context, donation *entities.Donation) (*entities.Donation, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, donation)
	m.mu.Unlock()
	if m.CreateDonationFunc == nil {
		panic("donationRepoMock.CreateDonationFunc: not set")
	}
	return m.CreateDonationFunc(ctx, donation)
}

func (m *donationRepoMock) UpdateDonationQuantity(ctx context.Context, id string, qty int) ([]*entities.Donation, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, qty)
	m.mu.Unlock()
	if m.UpdateDonationQuantityFunc == nil {
		panic("donationRepoMock.UpdateDonationQuantityFunc: not set")
	}
	return m.UpdateDonationQuantityFunc(ctx, id, qty)
}

func (m *donationRepoMock) DeleteDonation(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	if m.DeleteDonationFunc == nil {
		panic("donationRepoMock.DeleteDonationFunc: not set")
	}
	return m.DeleteDonationFunc(ctx, id)
}

func (m *donationRepoMock) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

func (m *donationRepoMock) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.createCalls)
}

func (m *donationRepoMock) UpdateCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.updateCalls...)
}

func (m *donationRepoMock) DeleteCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleteCalls...)
}
