package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TelegramUserID int64     `gorm:"uniqueIndex" json:"telegram_user_id"`
	Username       string    `json:"username"`
	PhotoURL       string    `json:"photo_url,omitempty"`

	FoodItems []*FoodItem `gorm:"foreignKey:UserID"`
	Timestamp
}
