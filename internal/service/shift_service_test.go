package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vpetrenko/smena_bot/internal/caption"
	"github.com/vpetrenko/smena_bot/internal/model"
	"go.uber.org/zap"
)

// --- Mock store ---

// mockStore потокобезопасное in-memory хранилище для unit-тестов
type mockStore struct {
	mu        sync.Mutex
	shifts    []*model.Shift
	nextID    int64
	insertErr error
	findErr   error
}

func (m *mockStore) Insert(_ context.Context, shift *model.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return m.insertErr
	}

	m.nextID++
	shift.ID = m.nextID

	stored := *shift
	m.shifts = append(m.shifts, &stored)
	return nil
}

func (m *mockStore) FindByID(_ context.Context, id int64) (*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, s := range m.shifts {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) FindByUserAndDate(_ context.Context, submitterID int64, date string) ([]*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Shift
	for _, s := range m.shifts {
		if s.SubmitterID == submitterID && s.ShiftDate == date {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockStore) FindByDate(_ context.Context, date string) ([]*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Shift
	for _, s := range m.shifts {
		if s.ShiftDate == date {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockStore) FindAll(_ context.Context) ([]*model.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]*model.Shift, 0, len(m.shifts))
	for _, s := range m.shifts {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockStore) UpdateStatusFrom(_ context.Context, id int64, from, to model.ShiftStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return false, m.findErr
	}
	for _, s := range m.shifts {
		if s.ID == id && s.Status == from {
			s.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shifts)
}

// --- Setup ---

const (
	adminID  = int64(42)
	userID   = int64(100)
	mediaRef = "AgACAgIAAxkBAAIB"
)

var testLoc = time.FixedZone("UTC+5", 5*3600)

// now соответствует 17.07.25 10:00 в поясе UTC+5
var testNow = time.Date(2025, 7, 17, 5, 0, 0, 0, time.UTC)

func newTestService(store ShiftStore) *ShiftService {
	isAdmin := func(id int64) bool { return id == adminID }
	return NewShiftService(store, isAdmin, testLoc, zap.NewNop())
}

func captionFor(start, end string) string {
	return fmt.Sprintf("Иван Петров\n%s %s\nЗона 10\nW witag 5", start, end)
}

// --- Submit ---

func TestSubmit_StoresShift(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	shift, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	assert.Equal(t, int64(1), shift.ID)
	assert.Equal(t, userID, shift.SubmitterID)
	assert.Equal(t, "Иван Петров", shift.FullName)
	assert.Equal(t, "17.07.25", shift.ShiftDate)
	assert.Equal(t, "07:00", shift.StartTime)
	assert.Equal(t, "15:00", shift.EndTime)
	assert.Equal(t, "Зона 10", shift.Zone)
	assert.Equal(t, "W witag 5", shift.Witag)
	assert.Equal(t, model.ShiftStatusActive, shift.Status)
	assert.Equal(t, mediaRef, shift.MediaRef)
	assert.Equal(t, 1, store.count())
}

func TestSubmit_WithoutWitag(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	shift, err := svc.Submit(context.Background(),
		"Иван Петров\n07:00 15:00\nЗона 10", mediaRef, userID, testNow)
	require.NoError(t, err)

	assert.Empty(t, shift.Witag)
}

func TestSubmit_DateStampedInFixedZone(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	// 21:00 UTC 16 июля — это уже 02:00 17 июля в UTC+5
	now := time.Date(2025, 7, 16, 21, 0, 0, 0, time.UTC)

	shift, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, now)
	require.NoError(t, err)

	assert.Equal(t, "17.07.25", shift.ShiftDate)
}

func TestSubmit_InvalidTime(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), captionFor("25:00", "26:00"), mediaRef, userID, testNow)
	require.ErrorIs(t, err, caption.ErrInvalidTime)

	// Отклонённая заявка ничего не сохраняет
	assert.Zero(t, store.count())
}

func TestSubmit_Overlap(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), captionFor("14:00", "22:00"), mediaRef, userID, testNow)

	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, "07:00", overlap.Conflict.StartTime)
	assert.Equal(t, "15:00", overlap.Conflict.EndTime)
	assert.Equal(t, 1, store.count())

	// Смена встык не конфликтует
	_, err = svc.Submit(context.Background(), captionFor("15:00", "23:00"), mediaRef, userID, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, store.count())
}

func TestSubmit_OtherUserDoesNotConflict(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID+1, testNow)
	require.NoError(t, err)
}

func TestSubmit_CanceledShiftFreesSlot(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	shift, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), adminID, shift.ID)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)
}

func TestSubmit_RejectionIdempotent(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	raw := "совсем не тот формат"

	_, err1 := svc.Submit(context.Background(), raw, mediaRef, userID, testNow)
	_, err2 := svc.Submit(context.Background(), raw, mediaRef, userID, testNow)

	require.ErrorIs(t, err1, caption.ErrInvalidFormat)
	require.ErrorIs(t, err2, caption.ErrInvalidFormat)
	assert.Zero(t, store.count())
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	store := &mockStore{insertErr: errors.New("connection refused")}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// Две одновременные пересекающиеся заявки одного сотрудника: блокировка
// пары (сотрудник, дата) гарантирует, что пройдёт ровно одна
func TestSubmit_ConcurrentOverlap(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
		}(i)
	}
	wg.Wait()

	var stored, rejected int
	for _, err := range errs {
		if err == nil {
			stored++
			continue
		}
		var overlap *OverlapError
		require.ErrorAs(t, err, &overlap)
		rejected++
	}

	assert.Equal(t, 1, stored)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, store.count())
}

// --- Status transitions ---

func TestTransition_CompleteThenCancel(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	shift, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), adminID, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, completed.Status)

	// Переходы односторонние: закрытую смену не отменить
	_, err = svc.Cancel(context.Background(), adminID, shift.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// И не завершить повторно
	_, err = svc.Complete(context.Background(), adminID, shift.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_RequiresAdmin(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	shift, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), userID, shift.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.Complete(context.Background(), adminID, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

// --- Queries ---

func TestQueries_RequireAdmin(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.ShiftsForDate(context.Background(), userID, "17.07.25")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.AllShifts(context.Background(), userID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestQueries_ReturnStoredShifts(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), captionFor("07:00", "15:00"), mediaRef, userID, testNow)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), captionFor("15:00", "23:00"), mediaRef, userID+1, testNow)
	require.NoError(t, err)

	byDate, err := svc.ShiftsForDate(context.Background(), adminID, "17.07.25")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	all, err := svc.AllShifts(context.Background(), adminID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQueries_StoreUnavailable(t *testing.T) {
	store := &mockStore{findErr: errors.New("connection refused")}
	svc := newTestService(store)

	_, err := svc.ShiftsForDate(context.Background(), adminID, "17.07.25")
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
