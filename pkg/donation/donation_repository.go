package donation

import (
	"Pasikuthu/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const donationColumns = "id, created_at, food_name, description, qty, name, location, contact_number"

type (
	// DonationRepository is the remote table store for the donations collection.
	DonationRepository interface {
		GetDonations(ctx context.Context) ([]*entities.Donation, error)
		CreateDonation(ctx context.Context, donation *entities.Donation) (*entities.Donation, error)
		UpdateDonationQuantity(ctx context.Context, id string, qty int) ([]*entities.Donation, error)
		DeleteDonation(ctx context.Context, id string) error
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) GetDonations(ctx context.Context) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Select(donationColumns).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// CreateDonation inserts and returns the stored row, including the id and
// created_at assigned by the database.
func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) (*entities.Donation, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Omit("id", "created_at").
		Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

// UpdateDonationQuantity returns the rows the store reports as updated. An id
// that no longer exists yields an empty slice rather than an error.
func (r *donationRepository) UpdateDonationQuantity(ctx context.Context, id string, qty int) ([]*entities.Donation, error) {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return []*entities.Donation{}, nil
	}

	var rows []*entities.Donation
	if err := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("id = ?", donationID).
		Update("qty", qty).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *donationRepository) DeleteDonation(ctx context.Context, id string) error {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id = ?", donationID).
		Delete(&entities.Donation{}).Error
}
