package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetFoodItems       = "food items retrieved successfully"
	MessageSuccessGetActiveCount     = "active item count retrieved successfully"
	MessageSuccessAddFoodItem        = "food item added successfully"
	MessageSuccessGetFoodItemDetails = "food item details retrieved successfully"
	MessageSuccessUpdateConsumed     = "food item consume status updated"
	MessageSuccessUpdateDiscarded    = "food item delete status updated"
	MessageSuccessUpdateFields       = "food item updated successfully"
	MessageSuccessUpdateFullDetails  = "food item details updated successfully"
	MessageSuccessUpdateMany         = "food items updated successfully"
	MessageSuccessUploadPhoto        = "food item photo uploaded successfully"
	MessageSuccessSendSummary        = "pantry summary sent successfully"

	MessageFailedGetFoodItems       = "failed to retrieve food items"
	MessageFailedGetActiveCount     = "failed to retrieve active item count"
	MessageFailedAddFoodItem        = "failed to add food item"
	MessageFailedGetFoodItemDetails = "failed to retrieve food item details"
	MessageFailedUpdateConsumed     = "failed to update consume status"
	MessageFailedUpdateDiscarded    = "failed to update delete status"
	MessageFailedUpdateFields       = "failed to update food item"
	MessageFailedUpdateFullDetails  = "failed to update food item details"
	MessageFailedUpdateMany         = "failed to update food items"
	MessageFailedUploadPhoto        = "failed to upload food item photo"
	MessageFailedSendSummary        = "failed to send pantry summary"

	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	ErrInvalidStatusFilter  = errors.New("invalid status filter")
	ErrInvalidQuantity      = errors.New("quantity must be a non-negative number")
	ErrInvalidExpiryDate    = errors.New("invalid expiry date")
	ErrNameRequired         = errors.New("name is required")
	ErrEmptyBatch           = errors.New("batch contains no items")
	ErrBatchUpdateFailed    = errors.New("batch update rolled back")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to food item")
)

const (
	FoodStatusActive = "active"
	FoodStatusPast   = "past"

	SortFieldCreatedAt  = "created_at"
	SortFieldExpiryDate = "expiry_date"
	SortFieldName       = "name"
	SortFieldQuantity   = "quantity"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Suggested input vocabularies for category and unit pickers. Items may
// carry values outside these lists and they round-trip unchanged.
type SuggestedCategory struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var SuggestedCategories = []SuggestedCategory{
	{Name: "Fruits", Emoji: "🍎"},
	{Name: "Vegetables", Emoji: "🥦"},
	{Name: "Meat", Emoji: "🍖"},
	{Name: "Dairy", Emoji: "🧀"},
	{Name: "Snacks", Emoji: "🍿"},
	{Name: "Beverages", Emoji: "🥤"},
	{Name: "Condiments", Emoji: "🍯"},
	{Name: "Grains", Emoji: "🍚"},
	{Name: "Frozen Food", Emoji: "🧊"},
	{Name: "Canned Food", Emoji: "🥫"},
	{Name: "Pastries", Emoji: "🍩"},
	{Name: "Cooked Food", Emoji: "🍲"},
	{Name: "Others", Emoji: "🍴"},
}

var SuggestedUnits = []string{
	"g", "ml", "oz", "l", "kg", "piece", "packet", "bottle", "cup",
	"can", "box", "jar", "container", "bowl", "carton", "serving", "others",
}

type (
	ListFilters struct {
		Category []string `json:"category"`
		Status   string   `json:"status" validate:"required,oneof=active past"`
	}

	SortSpec struct {
		Field     string `json:"field" validate:"required"`
		Direction string `json:"direction" validate:"required,oneof=asc desc"`
	}

	ListFoodItemsRequest struct {
		Search  string      `json:"search"`
		Filters ListFilters `json:"filters"`
		Sort    SortSpec    `json:"sort"`
	}

	FoodItemResponse struct {
		ID                  string     `json:"id"`
		Name                string     `json:"name"`
		Description         string     `json:"description"`
		Category            string     `json:"category"`
		Quantity            string     `json:"quantity"`
		Unit                string     `json:"unit"`
		ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
		StorageInstructions string     `json:"storage_instructions"`
		ImageURL            string     `json:"image_url,omitempty"`
		Consumed            bool       `json:"consumed"`
		Discarded           bool       `json:"discarded"`
		Status              string     `json:"status"`
		CreatedAt           time.Time  `json:"created_at"`
	}

	CountActiveItemsResponse struct {
		Count int64 `json:"count"`
	}

	AddFoodItemRequest struct {
		Name                string `json:"name" validate:"required"`
		Description         string `json:"description"`
		Category            string `json:"category" validate:"required"`
		Quantity            string `json:"quantity" validate:"required"`
		Unit                string `json:"unit" validate:"required"`
		ExpiryDate          string `json:"expiry_date" validate:"omitempty"`
		StorageInstructions string `json:"storage_instructions"`
		ImageURL            string `json:"image_url" validate:"omitempty,url"`
	}

	SetConsumedRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
		Consumed   *bool  `json:"consumed" validate:"required"`
	}

	SetDiscardedRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
		Deleted    *bool  `json:"deleted" validate:"required"`
	}

	UpdateFoodItemFieldsRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
		ExpiryDate string `json:"expiry_date" validate:"required"`
		Category   string `json:"category" validate:"required"`
		Quantity   string `json:"quantity" validate:"required"`
		Unit       string `json:"unit" validate:"required"`
		Consumed   *bool  `json:"consumed" validate:"required"`
	}

	UpdateFullDetailsRequest struct {
		FoodItemID          string `json:"food_item_id" validate:"required,uuid"`
		Name                string `json:"name" validate:"required"`
		Description         string `json:"description" validate:"required"`
		Category            string `json:"category" validate:"required"`
		Quantity            string `json:"quantity" validate:"required"`
		Unit                string `json:"unit" validate:"required"`
		ExpiryDate          string `json:"expiry_date" validate:"required"`
		StorageInstructions string `json:"storage_instructions" validate:"required"`
		Consumed            *bool  `json:"consumed" validate:"required"`
	}

	UpdateManyFoodItemsRequest struct {
		Items []UpdateFoodItemFieldsRequest `json:"items" validate:"required,min=1,dive"`
	}

	UploadFoodItemPhotoRequest struct {
		FoodItemID string                `json:"food_item_id" form:"food_item_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	SendPantrySummaryRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)
