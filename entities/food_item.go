package entities

import (
	"github.com/google/uuid"
	"time"
)

type FoodItem struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Category            string     `json:"category"` // open vocabulary, never enforced
	Quantity            float64    `gorm:"type:numeric" json:"quantity"`
	Unit                string     `json:"unit"` // open vocabulary, never enforced
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"` // nil means no expiry
	StorageInstructions string     `json:"storage_instructions"`
	ImageURL            string     `json:"image_url,omitempty"`
	Consumed            bool       `gorm:"default:false" json:"consumed"`
	Discarded           bool       `gorm:"default:false" json:"discarded"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
