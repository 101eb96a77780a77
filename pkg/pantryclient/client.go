// Package pantryclient is the coordination core behind the pantry list
// view: it keeps cached copies of the two read views, applies mutations
// optimistically, invalidates after every write, and hands out undo
// affordances that issue the inverse mutation.
package pantryclient

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/pkg/miniapp"
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultUndoTTL matches the lifetime of the toast the affordance lives
// in; there is no server-side window.
const DefaultUndoTTL = 3 * time.Second

// ErrConfirmationDeclined is returned when the user cancels the
// destructive-action popup.
var ErrConfirmationDeclined = errors.New("confirmation declined")

type (
	// Service is the slice of backend operations the view drives.
	// pantry.PantryService satisfies it.
	Service interface {
		ListFoodItems(ctx context.Context, telegramUserID *int64, req domain.ListFoodItemsRequest) ([]domain.FoodItemResponse, error)
		CountActiveItems(ctx context.Context, telegramUserID *int64) (domain.CountActiveItemsResponse, error)
		SetConsumed(ctx context.Context, telegramUserID int64, req domain.SetConsumedRequest) (domain.FoodItemResponse, error)
		SetDiscarded(ctx context.Context, telegramUserID int64, req domain.SetDiscardedRequest) (domain.FoodItemResponse, error)
	}

	Client struct {
		service        Service
		shell          miniapp.Shell
		telegramUserID int64
		undoTTL        time.Duration

		mu         sync.Mutex
		query      domain.ListFoodItemsRequest
		items      []domain.FoodItemResponse
		itemsValid bool
		count      int64
		countValid bool
	}
)

func NewClient(service Service, shell miniapp.Shell, telegramUserID int64, undoTTL time.Duration) *Client {
	if undoTTL <= 0 {
		undoTTL = DefaultUndoTTL
	}
	return &Client{
		service:        service,
		shell:          shell,
		telegramUserID: telegramUserID,
		undoTTL:        undoTTL,
		query: domain.ListFoodItemsRequest{
			Filters: domain.ListFilters{Status: domain.FoodStatusActive},
			Sort:    domain.SortSpec{Field: domain.SortFieldExpiryDate, Direction: domain.SortAsc},
		},
	}
}

// SetQuery replaces the list query (search text, category chips, status
// tab, sort) and marks the cached list stale.
func (c *Client) SetQuery(query domain.ListFoodItemsRequest) {
	c.mu.Lock()
	c.query = query
	c.itemsValid = false
	c.mu.Unlock()
}

// Invalidate marks both read views stale; the next read re-queries.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.itemsValid = false
	c.countValid = false
	c.mu.Unlock()
}

func (c *Client) FoodItems(ctx context.Context) ([]domain.FoodItemResponse, error) {
	c.mu.Lock()
	if c.itemsValid {
		items := make([]domain.FoodItemResponse, len(c.items))
		copy(items, c.items)
		c.mu.Unlock()
		return items, nil
	}
	query := c.query
	c.mu.Unlock()

	owner := c.telegramUserID
	items, err := c.service.ListFoodItems(ctx, &owner, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items = items
	c.itemsValid = true
	c.mu.Unlock()
	return items, nil
}

func (c *Client) ActiveCount(ctx context.Context) (int64, error) {
	c.mu.Lock()
	if c.countValid {
		count := c.count
		c.mu.Unlock()
		return count, nil
	}
	c.mu.Unlock()

	owner := c.telegramUserID
	res, err := c.service.CountActiveItems(ctx, &owner)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.count = res.Count
	c.countValid = true
	c.mu.Unlock()
	return res.Count, nil
}

// MarkConsumed sets the consumed flag, assuming success locally before the
// call returns. On failure the assumed state is rolled back and the error
// surfaced; on success both views are invalidated and an undo affordance
// for the inverse set is returned.
func (c *Client) MarkConsumed(ctx context.Context, itemID string, consumed bool) (*UndoHandle, error) {
	c.shell.Haptic().NotificationOccurred(miniapp.HapticSuccess)

	restore := c.applyConsumedLocally(itemID, consumed)

	value := consumed
	if _, err := c.service.SetConsumed(ctx, c.telegramUserID, domain.SetConsumedRequest{
		FoodItemID: itemID,
		Consumed:   &value,
	}); err != nil {
		restore()
		c.shell.Haptic().NotificationOccurred(miniapp.HapticError)
		return nil, err
	}

	c.Invalidate()

	inverse := !consumed
	return newUndoHandle(c.undoTTL, func(ctx context.Context) error {
		c.shell.Haptic().NotificationOccurred(miniapp.HapticSuccess)
		_, err := c.service.SetConsumed(ctx, c.telegramUserID, domain.SetConsumedRequest{
			FoodItemID: itemID,
			Consumed:   &inverse,
		})
		return err
	}, c.Invalidate), nil
}

// Discard soft-deletes (or restores) an item. Deletion asks the host
// popup for confirmation first.
func (c *Client) Discard(ctx context.Context, itemID string, deleted bool) (*UndoHandle, error) {
	if deleted && !c.confirm(ctx, "Delete Item?", "The item will be removed from your pantry.") {
		return nil, ErrConfirmationDeclined
	}

	c.shell.Haptic().NotificationOccurred(miniapp.HapticSuccess)

	restore := c.applyDiscardedLocally(itemID, deleted)

	value := deleted
	if _, err := c.service.SetDiscarded(ctx, c.telegramUserID, domain.SetDiscardedRequest{
		FoodItemID: itemID,
		Deleted:    &value,
	}); err != nil {
		restore()
		c.shell.Haptic().NotificationOccurred(miniapp.HapticError)
		return nil, err
	}

	c.Invalidate()

	inverse := !deleted
	return newUndoHandle(c.undoTTL, func(ctx context.Context) error {
		c.shell.Haptic().NotificationOccurred(miniapp.HapticSuccess)
		_, err := c.service.SetDiscarded(ctx, c.telegramUserID, domain.SetDiscardedRequest{
			FoodItemID: itemID,
			Deleted:    &inverse,
		})
		return err
	}, c.Invalidate), nil
}

// applyConsumedLocally flips the flag in the cached views and returns a
// func that restores the previous snapshot.
func (c *Client) applyConsumedLocally(itemID string, consumed bool) (restore func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevItems := make([]domain.FoodItemResponse, len(c.items))
	copy(prevItems, c.items)
	prevCount := c.count

	for i := range c.items {
		if c.items[i].ID == itemID && c.items[i].Consumed != consumed {
			c.items[i].Consumed = consumed
			if c.countValid && !c.items[i].Discarded {
				if consumed {
					c.count--
				} else {
					c.count++
				}
			}
		}
	}

	return func() {
		c.mu.Lock()
		c.items = prevItems
		c.count = prevCount
		c.mu.Unlock()
	}
}

func (c *Client) applyDiscardedLocally(itemID string, deleted bool) (restore func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevItems := make([]domain.FoodItemResponse, len(c.items))
	copy(prevItems, c.items)
	prevCount := c.count

	if deleted {
		kept := c.items[:0]
		for _, item := range c.items {
			if item.ID == itemID {
				if c.countValid && !item.Consumed {
					c.count--
				}
				continue
			}
			kept = append(kept, item)
		}
		c.items = kept
	}

	return func() {
		c.mu.Lock()
		c.items = prevItems
		c.count = prevCount
		c.mu.Unlock()
	}
}

func (c *Client) confirm(ctx context.Context, title, message string) bool {
	popup := c.shell.Popup()

	closed := make(chan string, 1)
	off := popup.OnClosed(func(buttonID string) {
		select {
		case closed <- buttonID:
		default:
		}
	})
	defer off()

	c.shell.Haptic().NotificationOccurred(miniapp.HapticWarning)
	popup.Open(miniapp.PopupParams{
		Title:   title,
		Message: message,
		Buttons: []miniapp.PopupButton{
			{ID: "ok", Type: "destructive"},
			{ID: "cancel", Type: "cancel"},
		},
	})

	select {
	case buttonID := <-closed:
		return buttonID == "ok"
	case <-ctx.Done():
		return false
	}
}
