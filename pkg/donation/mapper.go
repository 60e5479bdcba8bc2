package donation

import (
	"Pasikuthu/domain"
	"Pasikuthu/entities"
)

func toDomainDonation(e *entities.Donation) domain.Donation {
	return domain.Donation{
		ID:            e.ID.String(),
		CreatedAt:     e.CreatedAt,
		FoodName:      e.FoodName,
		Description:   e.Description,
		Quantity:      e.Qty,
		DonorName:     e.Name,
		Location:      e.Location,
		ContactNumber: e.ContactNumber,
	}
}

func toDomainDonations(rows []*entities.Donation) []domain.Donation {
	result := make([]domain.Donation, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		result = append(result, toDomainDonation(row))
	}
	return result
}

func toEntityDonation(p *domain.DonationPayload) *entities.Donation {
	return &entities.Donation{
		FoodName:      p.FoodName,
		Description:   p.Description,
		Qty:           p.Quantity,
		Name:          p.DonorName,
		Location:      p.Location,
		ContactNumber: p.ContactNumber,
	}
}
