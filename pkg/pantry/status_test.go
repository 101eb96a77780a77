package pantry

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/entities"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2025, time.March, 14, 23, 59, 59, 0, loc)

	got := StartOfDay(now)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestStatusOf(t *testing.T) {
	now := time.Date(2025, time.March, 14, 15, 0, 0, 0, time.Local)
	date := func(day int) *time.Time {
		d := time.Date(2025, time.March, day, 0, 0, 0, 0, time.Local)
		return &d
	}

	tests := []struct {
		name string
		item entities.FoodItem
		want string
	}{
		{"consumed is past regardless of expiry", entities.FoodItem{Consumed: true, ExpiryDate: date(20)}, domain.FoodStatusPast},
		{"no expiry never expires", entities.FoodItem{}, domain.FoodStatusActive},
		{"expired yesterday", entities.FoodItem{ExpiryDate: date(13)}, domain.FoodStatusPast},
		{"expiring today is still active", entities.FoodItem{ExpiryDate: date(14)}, domain.FoodStatusActive},
		{"expiring tomorrow", entities.FoodItem{ExpiryDate: date(15)}, domain.FoodStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			assert.Equal(t, tt.want, StatusOf(&item, now))
		})
	}
}
