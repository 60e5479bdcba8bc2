package entities

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CreatedAt     time.Time `gorm:"not null;default:now();index:idx_donations_created_at,sort:desc" json:"created_at"`
	FoodName      string    `gorm:"not null" json:"food_name"`
	Description   *string   `json:"description"`
	Qty           int       `gorm:"not null;default:0;check:chk_donations_qty,qty >= 0" json:"qty"`
	Name          *string   `json:"name"`
	Location      *string   `gorm:"size:100;index" json:"location"`
	ContactNumber *string   `gorm:"size:20" json:"contact_number"`
}

func (Donation) TableName() string {
	return "donations"
}
