package pantry

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/entities"
	"PantryPal-Backend/internal/utils/mailing"
	"PantryPal-Backend/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PantryService interface {
		ListFoodItems(ctx context.Context, telegramUserID *int64, req domain.ListFoodItemsRequest) ([]domain.FoodItemResponse, error)
		CountActiveItems(ctx context.Context, telegramUserID *int64) (domain.CountActiveItemsResponse, error)
		AddFoodItem(ctx context.Context, telegramUserID int64, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		GetFoodItemDetails(ctx context.Context, telegramUserID int64, id string) (domain.FoodItemResponse, error)
		SetConsumed(ctx context.Context, telegramUserID int64, req domain.SetConsumedRequest) (domain.FoodItemResponse, error)
		SetDiscarded(ctx context.Context, telegramUserID int64, req domain.SetDiscardedRequest) (domain.FoodItemResponse, error)
		UpdateFoodItemFields(ctx context.Context, telegramUserID int64, req domain.UpdateFoodItemFieldsRequest) (domain.FoodItemResponse, error)
		UpdateFullDetails(ctx context.Context, telegramUserID int64, req domain.UpdateFullDetailsRequest) (domain.FoodItemResponse, error)
		UpdateManyFoodItems(ctx context.Context, telegramUserID int64, req domain.UpdateManyFoodItemsRequest) ([]domain.FoodItemResponse, error)
		UploadFoodItemPhoto(ctx context.Context, telegramUserID int64, req domain.UploadFoodItemPhotoRequest) (domain.FoodItemResponse, error)
		SendPantrySummary(ctx context.Context, telegramUserID int64, req domain.SendPantrySummaryRequest) error
	}

	pantryService struct {
		pantryRepository PantryRepository
		cache            ViewCache
		s3               storage.AwsS3
	}
)

func NewPantryService(pantryRepository PantryRepository, cache ViewCache, s3 storage.AwsS3) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		cache:            cache,
		s3:               s3,
	}
}

// sortColumn maps a requested sort field onto its column. Anything outside
// the whitelist is rejected before the store is touched.
func sortColumn(field string) (string, error) {
	switch field {
	case domain.SortFieldCreatedAt, domain.SortFieldExpiryDate, domain.SortFieldName, domain.SortFieldQuantity:
		return field, nil
	default:
		return "", domain.ErrInvalidSortField
	}
}

// parseQuantity accepts the quantity as entered in the form. It is kept as
// text on the wire so the edit form can round-trip the user's input.
// ParseFloat also accepts NaN and the infinities, which are not amounts.
func parseQuantity(value string) (float64, error) {
	quantity, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return quantity, nil
}

func formatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

// parseExpiry parses a form date. An empty value means the item has no
// expiry.
func parseExpiry(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	expiryDate, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	return &expiryDate, nil
}

func parseExpiryRequired(value string) (*time.Time, error) {
	expiryDate, err := parseExpiry(value)
	if err != nil {
		return nil, err
	}
	if expiryDate == nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	return expiryDate, nil
}

func toFoodItemResponse(item *entities.FoodItem, now time.Time) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:                  item.ID.String(),
		Name:                item.Name,
		Description:         item.Description,
		Category:            item.Category,
		Quantity:            formatQuantity(item.Quantity),
		Unit:                item.Unit,
		ExpiryDate:          item.ExpiryDate,
		StorageInstructions: item.StorageInstructions,
		ImageURL:            item.ImageURL,
		Consumed:            item.Consumed,
		Discarded:           item.Discarded,
		Status:              StatusOf(item, now),
		CreatedAt:           item.CreatedAt,
	}
}

func (s *pantryService) ListFoodItems(ctx context.Context, telegramUserID *int64, req domain.ListFoodItemsRequest) ([]domain.FoodItemResponse, error) {
	column, err := sortColumn(req.Sort.Field)
	if err != nil {
		return nil, err
	}
	if req.Sort.Direction != domain.SortAsc && req.Sort.Direction != domain.SortDesc {
		return nil, domain.ErrInvalidSortDirection
	}
	if req.Filters.Status != domain.FoodStatusActive && req.Filters.Status != domain.FoodStatusPast {
		return nil, domain.ErrInvalidStatusFilter
	}

	// An unresolved owner yields an empty pantry, never someone else's.
	if telegramUserID == nil {
		return []domain.FoodItemResponse{}, nil
	}

	queryKey := QueryKey(req.Search, req.Filters.Category, req.Filters.Status, column, req.Sort.Direction)
	if cached, ok := s.cache.GetFoodItems(ctx, *telegramUserID, queryKey); ok {
		return cached, nil
	}

	now := time.Now()
	foodItems, err := s.pantryRepository.ListFoodItems(ctx, *telegramUserID, ListQuery{
		Search:     req.Search,
		Categories: req.Filters.Category,
		Status:     req.Filters.Status,
		SortField:  column,
		SortDesc:   req.Sort.Direction == domain.SortDesc,
		Today:      StartOfDay(now),
	})
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item, now))
	}

	// Populate before returning so a mutation's invalidation can never be
	// overtaken by a write of this pre-mutation snapshot.
	s.cache.SetFoodItems(ctx, *telegramUserID, queryKey, response)

	return response, nil
}

func (s *pantryService) CountActiveItems(ctx context.Context, telegramUserID *int64) (domain.CountActiveItemsResponse, error) {
	if telegramUserID == nil {
		return domain.CountActiveItemsResponse{Count: 0}, nil
	}

	if cached, ok := s.cache.GetActiveCount(ctx, *telegramUserID); ok {
		return domain.CountActiveItemsResponse{Count: cached}, nil
	}

	count, err := s.pantryRepository.CountActiveItems(ctx, *telegramUserID)
	if err != nil {
		return domain.CountActiveItemsResponse{}, err
	}

	s.cache.SetActiveCount(ctx, *telegramUserID, count)

	return domain.CountActiveItemsResponse{Count: count}, nil
}

func (s *pantryService) AddFoodItem(ctx context.Context, telegramUserID int64, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.FoodItemResponse{}, domain.ErrNameRequired
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	expiryDate, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	user, err := s.pantryRepository.GetUserByTelegramID(ctx, telegramUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrUserNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	foodItem := &entities.FoodItem{
		ID:                  uuid.New(),
		UserID:              user.ID,
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		Quantity:            quantity,
		Unit:                req.Unit,
		ExpiryDate:          expiryDate,
		StorageInstructions: req.StorageInstructions,
		ImageURL:            req.ImageURL,
	}

	if err := s.pantryRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

// getOwnedItem fetches an item and confirms it belongs to the resolved
// owner. An item owned by someone else is indistinguishable from a missing
// one.
func (s *pantryService) getOwnedItem(ctx context.Context, telegramUserID int64, id string) (*entities.FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	foodItem, err := s.pantryRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if foodItem.User == nil || foodItem.User.TelegramUserID != telegramUserID {
		return nil, domain.ErrFoodItemNotFound
	}

	return foodItem, nil
}

func (s *pantryService) GetFoodItemDetails(ctx context.Context, telegramUserID int64, id string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, telegramUserID, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) SetConsumed(ctx context.Context, telegramUserID int64, req domain.SetConsumedRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, telegramUserID, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	// Exact set, not a toggle: repeating the call is a no-op.
	if foodItem.Consumed != *req.Consumed {
		foodItem.Consumed = *req.Consumed
		if err := s.pantryRepository.UpdateFoodItem(ctx, foodItem); err != nil {
			return domain.FoodItemResponse{}, err
		}
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) SetDiscarded(ctx context.Context, telegramUserID int64, req domain.SetDiscardedRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, telegramUserID, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if foodItem.Discarded != *req.Deleted {
		foodItem.Discarded = *req.Deleted
		if err := s.pantryRepository.UpdateFoodItem(ctx, foodItem); err != nil {
			return domain.FoodItemResponse{}, err
		}
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) UpdateFoodItemFields(ctx context.Context, telegramUserID int64, req domain.UpdateFoodItemFieldsRequest) (domain.FoodItemResponse, error) {
	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	expiryDate, err := parseExpiryRequired(req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem, err := s.getOwnedItem(ctx, telegramUserID, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	// Quick-edit touches only these fields; name, description and storage
	// instructions stay as they are.
	foodItem.ExpiryDate = expiryDate
	foodItem.Category = req.Category
	foodItem.Quantity = quantity
	foodItem.Unit = req.Unit
	foodItem.Consumed = *req.Consumed

	if err := s.pantryRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) UpdateFullDetails(ctx context.Context, telegramUserID int64, req domain.UpdateFullDetailsRequest) (domain.FoodItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.FoodItemResponse{}, domain.ErrNameRequired
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	expiryDate, err := parseExpiryRequired(req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem, err := s.getOwnedItem(ctx, telegramUserID, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem.Name = req.Name
	foodItem.Description = req.Description
	foodItem.Category = req.Category
	foodItem.Quantity = quantity
	foodItem.Unit = req.Unit
	foodItem.ExpiryDate = expiryDate
	foodItem.StorageInstructions = req.StorageInstructions
	foodItem.Consumed = *req.Consumed

	if err := s.pantryRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) UpdateManyFoodItems(ctx context.Context, telegramUserID int64, req domain.UpdateManyFoodItemsRequest) ([]domain.FoodItemResponse, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	// Validate every entry before any store write so a malformed batch
	// never reaches the transaction.
	updates := make([]FieldsUpdate, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(item.FoodItemID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}

		quantity, err := parseQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}

		expiryDate, err := parseExpiryRequired(item.ExpiryDate)
		if err != nil {
			return nil, err
		}

		updates = append(updates, FieldsUpdate{
			ID:         id,
			ExpiryDate: expiryDate,
			Category:   item.Category,
			Quantity:   quantity,
			Unit:       item.Unit,
			Consumed:   *item.Consumed,
		})
	}

	updated, err := s.pantryRepository.UpdateManyFoodItems(ctx, telegramUserID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The whole save failed and was rolled back; the caller keeps
			// its edit state and may retry.
			return nil, domain.ErrBatchUpdateFailed
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, telegramUserID)

	now := time.Now()
	response := make([]domain.FoodItemResponse, 0, len(updated))
	for _, item := range updated {
		response = append(response, toFoodItemResponse(item, now))
	}

	return response, nil
}

func (s *pantryService) UploadFoodItemPhoto(ctx context.Context, telegramUserID int64, req domain.UploadFoodItemPhotoRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, telegramUserID, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	var uploadErr error

	if foodItem.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.FoodItemResponse{}, uploadErr
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.pantryRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.cache.Invalidate(ctx, telegramUserID)

	return toFoodItemResponse(foodItem, time.Now()), nil
}

func (s *pantryService) SendPantrySummary(ctx context.Context, telegramUserID int64, req domain.SendPantrySummaryRequest) error {
	now := time.Now()
	foodItems, err := s.pantryRepository.ListFoodItems(ctx, telegramUserID, ListQuery{
		Status:    domain.FoodStatusActive,
		SortField: domain.SortFieldExpiryDate,
		Today:     StartOfDay(now),
	})
	if err != nil {
		return err
	}

	var body strings.Builder
	body.WriteString("<h2>Your pantry</h2><ul>")
	for _, item := range foodItems {
		expiry := "no expiry"
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format("2006-01-02")
		}
		fmt.Fprintf(&body, "<li>%s — %s %s (%s, expires %s)</li>",
			item.Name, formatQuantity(item.Quantity), item.Unit, item.Category, expiry)
	}
	body.WriteString("</ul>")

	return mailing.SendMail(req.Email, "Your pantry summary", body.String())
}
