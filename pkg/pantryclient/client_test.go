package pantryclient

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/pkg/miniapp"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu             sync.Mutex
	items          []domain.FoodItemResponse
	count          int64
	listCalls      int
	countCalls     int
	consumedCalls  []domain.SetConsumedRequest
	discardedCalls []domain.SetDiscardedRequest
	failNext       error
}

func (s *fakeService) ListFoodItems(_ context.Context, _ *int64, _ domain.ListFoodItemsRequest) ([]domain.FoodItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	items := make([]domain.FoodItemResponse, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *fakeService) CountActiveItems(_ context.Context, _ *int64) (domain.CountActiveItemsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countCalls++
	return domain.CountActiveItemsResponse{Count: s.count}, nil
}

func (s *fakeService) SetConsumed(_ context.Context, _ int64, req domain.SetConsumedRequest) (domain.FoodItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		return domain.FoodItemResponse{}, err
	}
	s.consumedCalls = append(s.consumedCalls, req)
	return domain.FoodItemResponse{ID: req.FoodItemID, Consumed: *req.Consumed}, nil
}

func (s *fakeService) SetDiscarded(_ context.Context, _ int64, req domain.SetDiscardedRequest) (domain.FoodItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		return domain.FoodItemResponse{}, err
	}
	s.discardedCalls = append(s.discardedCalls, req)
	return domain.FoodItemResponse{ID: req.FoodItemID, Discarded: *req.Deleted}, nil
}

// answeringShell is a noop shell except that popups resolve with a fixed
// button id, standing in for the user's choice.
type answeringShell struct {
	miniapp.Shell
	answer string
	popup  *answeringPopup
}

type answeringPopup struct {
	mu     sync.Mutex
	answer string
	closed func(buttonID string)
	opens  int
}

func newAnsweringShell(answer string) *answeringShell {
	return &answeringShell{
		Shell:  miniapp.NewNoopShell(),
		popup:  &answeringPopup{answer: answer},
	}
}

func (s *answeringShell) Popup() miniapp.Popup { return s.popup }

func (p *answeringPopup) Open(miniapp.PopupParams) {
	p.mu.Lock()
	p.opens++
	closed := p.closed
	answer := p.answer
	p.mu.Unlock()
	if closed != nil {
		closed(answer)
	}
}

func (p *answeringPopup) OnClosed(fn func(buttonID string)) (off func()) {
	p.mu.Lock()
	p.closed = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.closed = nil
		p.mu.Unlock()
	}
}

func seededClient(t *testing.T, service *fakeService, shell miniapp.Shell) *Client {
	t.Helper()
	if shell == nil {
		shell = miniapp.NewNoopShell()
	}
	client := NewClient(service, shell, 42, time.Minute)

	_, err := client.FoodItems(context.Background())
	require.NoError(t, err)
	_, err = client.ActiveCount(context.Background())
	require.NoError(t, err)
	return client
}

func item(name string) domain.FoodItemResponse {
	return domain.FoodItemResponse{ID: uuid.NewString(), Name: name, Status: domain.FoodStatusActive}
}

func TestFoodItemsCachedUntilInvalidated(t *testing.T) {
	service := &fakeService{items: []domain.FoodItemResponse{item("Milk")}, count: 1}
	client := seededClient(t, service, nil)

	_, err := client.FoodItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, service.listCalls, "a valid view is served locally")

	client.Invalidate()

	_, err = client.FoodItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, service.listCalls)
}

func TestSetQueryInvalidatesOnlyTheList(t *testing.T) {
	service := &fakeService{items: []domain.FoodItemResponse{item("Milk")}, count: 1}
	client := seededClient(t, service, nil)

	query := client.query
	query.Search = "mi"
	client.SetQuery(query)

	_, err := client.FoodItems(context.Background())
	require.NoError(t, err)
	_, err = client.ActiveCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, service.listCalls)
	assert.Equal(t, 1, service.countCalls, "the badge count survives a query change")
}

func TestMarkConsumedAppliesAndInvalidates(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	client := seededClient(t, service, nil)

	handle, err := client.MarkConsumed(context.Background(), milk.ID, true)
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, StateApplied, handle.State())

	require.Len(t, service.consumedCalls, 1)
	assert.Equal(t, milk.ID, service.consumedCalls[0].FoodItemID)
	assert.True(t, *service.consumedCalls[0].Consumed)

	// Both views are stale after the mutation.
	_, err = client.FoodItems(context.Background())
	require.NoError(t, err)
	_, err = client.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, service.listCalls)
	assert.Equal(t, 2, service.countCalls)
}

func TestMarkConsumedFailureRestoresTheView(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	client := seededClient(t, service, nil)
	service.failNext = errors.New("store unavailable")

	handle, err := client.MarkConsumed(context.Background(), milk.ID, true)

	require.Error(t, err)
	assert.Nil(t, handle)

	items, err := client.FoodItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Consumed, "the assumed state is rolled back")

	count, err := client.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, service.listCalls, "a failed mutation does not invalidate")
}

func TestUndoIssuesTheInverseMutation(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	client := seededClient(t, service, nil)

	handle, err := client.MarkConsumed(context.Background(), milk.ID, true)
	require.NoError(t, err)

	require.NoError(t, handle.Undo(context.Background()))
	assert.Equal(t, StateIdle, handle.State())

	require.Len(t, service.consumedCalls, 2)
	assert.False(t, *service.consumedCalls[1].Consumed)

	assert.ErrorIs(t, handle.Undo(context.Background()), ErrUndoUnavailable)
	require.Len(t, service.consumedCalls, 2)
}

func TestDiscardAsksForConfirmation(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	shell := newAnsweringShell("cancel")
	client := seededClient(t, service, shell)

	handle, err := client.Discard(context.Background(), milk.ID, true)

	assert.ErrorIs(t, err, ErrConfirmationDeclined)
	assert.Nil(t, handle)
	assert.Equal(t, 1, shell.popup.opens)
	assert.Empty(t, service.discardedCalls)

	items, listErr := client.FoodItems(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, items, 1, "a declined delete leaves the view untouched")
}

func TestDiscardRemovesLocallyAndOffersUndo(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	shell := newAnsweringShell("ok")
	client := seededClient(t, service, shell)

	handle, err := client.Discard(context.Background(), milk.ID, true)
	require.NoError(t, err)
	require.NotNil(t, handle)

	require.Len(t, service.discardedCalls, 1)
	assert.True(t, *service.discardedCalls[0].Deleted)

	require.NoError(t, handle.Undo(context.Background()))
	require.Len(t, service.discardedCalls, 2)
	assert.False(t, *service.discardedCalls[1].Deleted)
}

func TestRestoreSkipsConfirmation(t *testing.T) {
	milk := item("Milk")
	service := &fakeService{items: []domain.FoodItemResponse{milk}, count: 1}
	shell := newAnsweringShell("cancel")
	client := seededClient(t, service, shell)

	handle, err := client.Discard(context.Background(), milk.ID, false)

	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Zero(t, shell.popup.opens, "only deletion is destructive")
}
