package donation

import (
	"Pasikuthu/domain"
	"Pasikuthu/pkg/validation"
	"Pasikuthu/pkg/view"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
)

type (
	DonationService interface {
		GetDonations(ctx context.Context, filter domain.FilterState) domain.DonationView
		GetCollectionStatus(ctx context.Context) domain.CollectionStatus
		CreateDonation(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error)
		UpdateDonationQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.Donation, error)
		DeleteDonation(ctx context.Context, id string) error
		ReloadDonations(ctx context.Context) error
	}

	donationService struct {
		donationRepository DonationRepository
		store              *DonationStore
		validator          validation.DonationValidator
		notice             *Notice
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	store *DonationStore,
	validator validation.DonationValidator,
	notice *Notice,
) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		store:              store,
		validator:          validator,
		notice:             notice,
	}
}

func (s *donationService) GetDonations(ctx context.Context, filter domain.FilterState) domain.DonationView {
	return view.Derive(s.store.Snapshot(), filter)
}

func (s *donationService) GetCollectionStatus(ctx context.Context) domain.CollectionStatus {
	status := domain.CollectionStatus{
		Loading:    s.store.Loading(),
		Notice:     s.notice.Message(),
		PendingIDs: s.store.LockedIDs(),
	}
	if err := s.store.LoadError(); err != nil {
		status.LoadError = err.Error()
	}
	return status
}

// CreateDonation validates the form, inserts it remotely and only then prepends
// the returned row locally.
func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest) (result *domain.Donation, err error) {
	if s.store.Session() == nil {
		return nil, domain.ErrNoSession
	}

	payload, err := s.validator.ValidateDonationForm(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, recoveredError("create donation", r)
			log.Errorw("create donation panicked", "panic", r)
		}
	}()

	row, err := s.donationRepository.CreateDonation(ctx, toEntityDonation(payload))
	if err != nil {
		err = classifyRemoteError("create donation", err)
		log.Errorw("failed to create donation", "error", err)
		return nil, err
	}
	if row == nil {
		err = &domain.UnexpectedError{Op: "create donation", Cause: errors.New("insert returned no row")}
		log.Errorw("failed to create donation", "error", err)
		return nil, err
	}

	created := toDomainDonation(row)
	s.store.InsertConfirmed(created)
	log.Infow("donation created", "id", created.ID, "qty", created.Quantity)
	return &created, nil
}

// UpdateDonationQuantity sends the new quantity and adopts whatever row the store
// returns. Equal or blank input never reaches the store.
func (s *donationService) UpdateDonationQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (result *domain.Donation, err error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrDonationNotFound
	}

	qty, changed, err := s.validator.ValidateQuantityUpdate(req.Quantity, current.Quantity)
	if err != nil {
		s.notice.Set(err.Error())
		return nil, err
	}
	if !changed {
		return &current, nil
	}

	if !s.store.TryLock(id) {
		return nil, domain.ErrMutationInFlight
	}
	defer s.store.Unlock(id)
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, recoveredError("update", r)
			s.notice.Set(err.Error())
			log.Errorw("update donation panicked", "id", id, "panic", r)
		}
	}()

	rows, err := s.donationRepository.UpdateDonationQuantity(ctx, id, qty)
	if err != nil {
		err = classifyRemoteError("update", err)
		s.notice.Set(err.Error())
		log.Errorw("failed to update donation", "id", id, "error", err)
		return nil, err
	}

	var updated *domain.Donation
	if len(rows) > 0 && rows[0] != nil {
		d := toDomainDonation(rows[0])
		updated = &d
	}

	if err := s.store.ApplyUpdateConfirmed(ctx, id, updated); err != nil {
		s.notice.Set(err.Error())
		return nil, err
	}

	if updated == nil {
		log.Warnw("update returned no row, collection reloaded", "id", id)
		if d, ok := s.store.Get(id); ok {
			return &d, nil
		}
		return nil, domain.ErrDonationNotFound
	}
	return updated, nil
}

// DeleteDonation removes id locally only after the store confirmed the delete.
// An id that is already gone is not an error.
func (s *donationService) DeleteDonation(ctx context.Context, id string) (err error) {
	if _, ok := s.store.Get(id); !ok {
		return nil
	}

	if !s.store.TryLock(id) {
		return domain.ErrMutationInFlight
	}
	defer s.store.Unlock(id)
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError("delete", r)
			s.notice.Set(err.Error())
			log.Errorw("delete donation panicked", "id", id, "panic", r)
		}
	}()

	if err := s.donationRepository.DeleteDonation(ctx, id); err != nil {
		err = classifyRemoteError("delete", err)
		s.notice.Set(err.Error())
		log.Errorw("failed to delete donation", "id", id, "error", err)
		return err
	}

	s.store.RemoveConfirmed(id)
	log.Infow("donation deleted", "id", id)
	return nil
}

func (s *donationService) ReloadDonations(ctx context.Context) error {
	session := s.store.Session()
	if session == nil {
		return domain.ErrNoSession
	}
	return s.store.Reload(ctx, session)
}
