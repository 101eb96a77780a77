package pantry

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/entities"
	"time"
)

// StartOfDay returns local midnight for t. Status classification uses the
// day boundary rather than the current instant so an item never flips
// between active and past during the day.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StatusOf derives the lifecycle classification of an item. An item is
// active while it is unconsumed and not yet expired; no expiry date means
// it never expires. An item expiring exactly at today's midnight is still
// active.
func StatusOf(item *entities.FoodItem, now time.Time) string {
	if item.Consumed {
		return domain.FoodStatusPast
	}
	if item.ExpiryDate == nil {
		return domain.FoodStatusActive
	}
	if item.ExpiryDate.Before(StartOfDay(now)) {
		return domain.FoodStatusPast
	}
	return domain.FoodStatusActive
}
