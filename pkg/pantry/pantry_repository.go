package pantry

import (
	"PantryPal-Backend/entities"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ListQuery carries an already-validated query: SortField must be one
	// of the whitelisted columns and Status one of the two derived states.
	ListQuery struct {
		Search     string
		Categories []string
		Status     string
		SortField  string
		SortDesc   bool
		Today      time.Time // start of local day, used by the status predicate
	}

	// FieldsUpdate is one entry of a batch quick-edit save.
	FieldsUpdate struct {
		ID         uuid.UUID
		ExpiryDate *time.Time
		Category   string
		Quantity   float64
		Unit       string
		Consumed   bool
	}

	PantryRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		ListFoodItems(ctx context.Context, telegramUserID int64, query ListQuery) ([]*entities.FoodItem, error)
		CountActiveItems(ctx context.Context, telegramUserID int64) (int64, error)
		UpdateManyFoodItems(ctx context.Context, telegramUserID int64, updates []FieldsUpdate) ([]*entities.FoodItem, error)
		GetUserByTelegramID(ctx context.Context, telegramUserID int64) (*entities.User, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *pantryRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *pantryRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *pantryRepository) ListFoodItems(ctx context.Context, telegramUserID int64, query ListQuery) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	db := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = food_items.user_id").
		Where("users.telegram_user_id = ?", telegramUserID).
		Where("food_items.discarded = ?", false)

	if query.Search != "" {
		db = db.Where("food_items.name ILIKE ?", "%"+query.Search+"%")
	}

	if len(query.Categories) > 0 {
		lowered := make([]string, len(query.Categories))
		for i, category := range query.Categories {
			lowered[i] = strings.ToLower(category)
		}
		db = db.Where("LOWER(food_items.category) IN ?", lowered)
	}

	switch query.Status {
	case "active":
		db = db.Where(
			"food_items.consumed = ? AND (food_items.expiry_date IS NULL OR food_items.expiry_date >= ?)",
			false, query.Today,
		)
	case "past":
		db = db.Where(
			"(food_items.consumed = ? OR (food_items.expiry_date IS NOT NULL AND food_items.expiry_date < ?))",
			true, query.Today,
		)
	}

	direction := "asc"
	if query.SortDesc {
		direction = "desc"
	}
	// Fixed secondary sort keeps ordering deterministic when the primary
	// values collide.
	order := fmt.Sprintf("food_items.%s %s, food_items.name asc", query.SortField, direction)

	if err := db.Order(order).Find(&foodItems).Error; err != nil {
		return nil, err
	}

	return foodItems, nil
}

// CountActiveItems counts unconsumed, undiscarded items for the badge.
// Unlike the listing's derived status this deliberately ignores expiry.
func (r *pantryRepository) CountActiveItems(ctx context.Context, telegramUserID int64) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Joins("JOIN users ON users.id = food_items.user_id").
		Where("users.telegram_user_id = ?", telegramUserID).
		Where("food_items.discarded = ? AND food_items.consumed = ?", false, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *pantryRepository) UpdateManyFoodItems(ctx context.Context, telegramUserID int64, updates []FieldsUpdate) ([]*entities.FoodItem, error) {
	updated := make([]*entities.FoodItem, 0, len(updates))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			var foodItem entities.FoodItem
			if err := tx.
				Joins("JOIN users ON users.id = food_items.user_id").
				Where("food_items.id = ? AND users.telegram_user_id = ?", u.ID, telegramUserID).
				First(&foodItem).Error; err != nil {
				// Any miss aborts the transaction so no item keeps a
				// partial batch.
				return err
			}

			foodItem.ExpiryDate = u.ExpiryDate
			foodItem.Category = u.Category
			foodItem.Quantity = u.Quantity
			foodItem.Unit = u.Unit
			foodItem.Consumed = u.Consumed

			if err := tx.Save(&foodItem).Error; err != nil {
				return err
			}
			updated = append(updated, &foodItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *pantryRepository) GetUserByTelegramID(ctx context.Context, telegramUserID int64) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("telegram_user_id = ?", telegramUserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
