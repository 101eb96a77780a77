package handlers

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/internal/api/presenters"
	"PantryPal-Backend/pkg/pantry"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PantryHandler interface {
		ListFoodItems(c *fiber.Ctx) error
		CountActiveItems(c *fiber.Ctx) error
		AddFoodItem(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		SetConsumed(c *fiber.Ctx) error
		SetDiscarded(c *fiber.Ctx) error
		UpdateFoodItemFields(c *fiber.Ctx) error
		UpdateFullDetails(c *fiber.Ctx) error
		UpdateManyFoodItems(c *fiber.Ctx) error
		UploadFoodItemPhoto(c *fiber.Ctx) error
		SendPantrySummary(c *fiber.Ctx) error
		GetSuggestedVocabularies(c *fiber.Ctx) error
	}

	pantryHandler struct {
		pantryService pantry.PantryService
		validator     *validator.Validate
	}
)

func NewPantryHandler(pantryService pantry.PantryService, validator *validator.Validate) PantryHandler {
	return &pantryHandler{
		pantryService: pantryService,
		validator:     validator,
	}
}

func telegramUserID(c *fiber.Ctx) int64 {
	return c.Locals("telegram_user_id").(int64)
}

// errorStatus maps the service error taxonomy onto HTTP statuses:
// validation errors are client mistakes, missing items are 404, a rolled
// back batch is a conflict, and everything else is the store's problem.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSortField),
		errors.Is(err, domain.ErrInvalidSortDirection),
		errors.Is(err, domain.ErrInvalidStatusFilter),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrBatchUpdateFailed):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *pantryHandler) ListFoodItems(c *fiber.Ctx) error {
	owner := telegramUserID(c)

	req := domain.ListFoodItemsRequest{
		Search: c.Query("search"),
		Filters: domain.ListFilters{
			Status: c.Query("status", domain.FoodStatusActive),
		},
		Sort: domain.SortSpec{
			Field:     c.Query("sort_field", domain.SortFieldExpiryDate),
			Direction: c.Query("sort_direction", domain.SortAsc),
		},
	}
	if categories := c.Query("category"); categories != "" {
		req.Filters.Category = strings.Split(categories, ",")
	}

	items, err := h.pantryService.ListFoodItems(c.Context(), &owner, req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *pantryHandler) CountActiveItems(c *fiber.Ctx) error {
	owner := telegramUserID(c)

	count, err := h.pantryService.CountActiveItems(c.Context(), &owner)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetActiveCount, err)
	}

	return presenters.SuccessResponse(c, count, fiber.StatusOK, domain.MessageSuccessGetActiveCount)
}

func (h *pantryHandler) AddFoodItem(c *fiber.Ctx) error {
	req := new(domain.AddFoodItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFoodItem, err)
	}

	res, err := h.pantryService.AddFoodItem(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedAddFoodItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFoodItem)
}

func (h *pantryHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.pantryService.GetFoodItemDetails(c.Context(), telegramUserID(c), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetFoodItemDetails, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItemDetails)
}

func (h *pantryHandler) SetConsumed(c *fiber.Ctx) error {
	req := new(domain.SetConsumedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateConsumed, err)
	}

	res, err := h.pantryService.SetConsumed(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateConsumed, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateConsumed)
}

func (h *pantryHandler) SetDiscarded(c *fiber.Ctx) error {
	req := new(domain.SetDiscardedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDiscarded, err)
	}

	res, err := h.pantryService.SetDiscarded(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateDiscarded, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDiscarded)
}

func (h *pantryHandler) UpdateFoodItemFields(c *fiber.Ctx) error {
	req := new(domain.UpdateFoodItemFieldsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFields, err)
	}

	res, err := h.pantryService.UpdateFoodItemFields(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateFields, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFields)
}

func (h *pantryHandler) UpdateFullDetails(c *fiber.Ctx) error {
	req := new(domain.UpdateFullDetailsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFullDetails, err)
	}

	res, err := h.pantryService.UpdateFullDetails(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateFullDetails, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFullDetails)
}

func (h *pantryHandler) UpdateManyFoodItems(c *fiber.Ctx) error {
	req := new(domain.UpdateManyFoodItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMany, err)
	}

	res, err := h.pantryService.UpdateManyFoodItems(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateMany, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMany)
}

func (h *pantryHandler) UploadFoodItemPhoto(c *fiber.Ctx) error {
	req := new(domain.UploadFoodItemPhotoRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, err)
	}

	res, err := h.pantryService.UploadFoodItemPhoto(c.Context(), telegramUserID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUploadPhoto, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadPhoto)
}

func (h *pantryHandler) SendPantrySummary(c *fiber.Ctx) error {
	req := new(domain.SendPantrySummaryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendSummary, err)
	}

	if err := h.pantryService.SendPantrySummary(c.Context(), telegramUserID(c), *req); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSendSummary, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendSummary)
}

// GetSuggestedVocabularies serves the category and unit suggestions the
// input pickers show. They are suggestions only; the data layer accepts
// any string.
func (h *pantryHandler) GetSuggestedVocabularies(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"categories": domain.SuggestedCategories,
		"units":      domain.SuggestedUnits,
	}, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}
