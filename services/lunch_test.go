package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamdew/yellostory-lunch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

// countingStore records lookups so tests can assert a store was not queried.
type countingStore struct {
	*MemStore
	finds int
}

func (s *countingStore) FindLunch(ctx context.Context, category, date string) (*models.LunchMenu, error) {
	s.finds++
	return s.MemStore.FindLunch(ctx, category, date)
}

type failingStore struct {
	*MemStore
}

var errStoreDown = errors.New("store down")

func (failingStore) FindLunch(context.Context, string, string) (*models.LunchMenu, error) {
	return nil, errStoreDown
}

func fixedClock(y int, m time.Month, d, hour int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, hour, 0, 0, 0, kst) }
}

func newTestService(store LunchStore, now func() time.Time, opts ...Option) *Service {
	opts = append([]Option{WithClock(now), WithLocation(kst)}, opts...)
	return NewService(store, opts...)
}

func TestService_Date(t *testing.T) {
	// 23:30 UTC on the 7th is already the 8th in Seoul.
	utc := func() time.Time { return time.Date(2024, 3, 7, 23, 30, 0, 0, time.UTC) }
	svc := newTestService(NewMemStore(), utc)

	assert.Equal(t, "2024-03-08", svc.Date(Today).Format(DateLayout))
	assert.Equal(t, "2024-03-09", svc.Date(Tomorrow).Format(DateLayout))
	assert.Equal(t, "2024-03-10", svc.Date(DayAfterTomorrow).Format(DateLayout))
}

func TestService_DateAcrossMonthEnd(t *testing.T) {
	svc := newTestService(NewMemStore(), fixedClock(2024, 2, 28, 12))
	assert.Equal(t, "2024-02-29", svc.Date(Tomorrow).Format(DateLayout))
	assert.Equal(t, "2024-03-01", svc.Date(DayAfterTomorrow).Format(DateLayout))
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemStore: NewMemStore()}
	// Thursday 2024-03-07
	svc := newTestService(store, fixedClock(2024, 3, 7, 9))

	_, err := store.CreateLunch(ctx, &models.LunchMenu{Date: "2024-03-07", Category: models.CategoryBabdo, Foods: "비빔밥"})
	require.NoError(t, err)
	_, err = store.CreateLunch(ctx, &models.LunchMenu{Date: "2024-03-07", Category: models.CategoryWoorifood, Foods: "라면"})
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, Today)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.CategoryBabdo, got.Category)
	assert.Equal(t, "비빔밥", got.Foods)

	got, err = svc.Resolve(ctx, Tomorrow)
	require.NoError(t, err)
	assert.Nil(t, got)

	finds := store.finds
	got, err = svc.Resolve(ctx, DayAfterTomorrow) // Saturday
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, finds, store.finds, "weekend must not query the store")
}

func TestService_ResolveStoreError(t *testing.T) {
	svc := newTestService(failingStore{NewMemStore()}, fixedClock(2024, 3, 7, 9))
	_, err := svc.Resolve(context.Background(), Today)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestService_RegisterUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	svc := newTestService(store, fixedClock(2024, 3, 7, 9))

	first, err := svc.Register(ctx, CreateLunchInput{Date: "2024-03-08", Category: "우리푸드", Foods: "김치찌개"})
	require.NoError(t, err)
	second, err := svc.Register(ctx, CreateLunchInput{Date: "2024-03-08", Category: "우리푸드", Foods: "된장찌개\n밥"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "된장찌개\n밥", second.Foods)
	assert.Equal(t, 1, store.Len())

	items, err := svc.List(ctx, models.LunchFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "된장찌개\n밥", items[0].Foods)
}

func TestService_RegisterValidates(t *testing.T) {
	store := NewMemStore()
	svc := newTestService(store, fixedClock(2024, 3, 7, 9))

	_, err := svc.Register(context.Background(), CreateLunchInput{Foods: "밥"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Code)
	assert.Zero(t, store.Len())
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	svc := newTestService(store, fixedClock(2024, 3, 7, 9))

	// absent menu is not an error
	require.NoError(t, svc.Remove(ctx, RemoveLunchInput{Category: "밥도", Date: "2099-01-01"}))

	_, err := svc.Register(ctx, CreateLunchInput{Date: "2024-03-07", Category: "밥도", Foods: "밥"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, CreateLunchInput{Date: "2024-03-07", Category: "우리푸드", Foods: "면"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, RemoveLunchInput{Category: "밥도", Date: "2024-03-07"}))
	assert.Equal(t, 1, store.Len())

	left, err := store.FindLunch(ctx, "우리푸드", "2024-03-07")
	require.NoError(t, err)
	assert.NotNil(t, left)

	// twice is fine too
	require.NoError(t, svc.Remove(ctx, RemoveLunchInput{Category: "밥도", Date: "2024-03-07"}))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(NewMemStore(), fixedClock(2024, 3, 7, 9))

	for _, in := range []CreateLunchInput{
		{Date: "2024-03-06", Category: "우리푸드", Foods: "a"},
		{Date: "2024-03-04", Category: "우리푸드", Foods: "b"},
		{Date: "2024-03-05", Category: "밥도", Foods: "c"},
		{Date: "2024-03-05", Category: "우리푸드", Foods: "d"},
	} {
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, models.LunchFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"b", "c", "d", "a"}, foodsOf(all))

	ranged, err := svc.List(ctx, models.LunchFilter{Category: "우리푸드", StartDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, foodsOf(ranged))

	upTo, err := svc.List(ctx, models.LunchFilter{EndDate: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, foodsOf(upTo))

	_, err = svc.List(ctx, models.LunchFilter{StartDate: "2024-13-01"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func foodsOf(items []models.LunchMenu) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.Foods)
	}
	return out
}

func TestDay_Label(t *testing.T) {
	assert.Equal(t, "오늘", Today.Label())
	assert.Equal(t, "내일", Tomorrow.Label())
	assert.Equal(t, "모레", DayAfterTomorrow.Label())
	assert.Equal(t, 2, DayAfterTomorrow.Offset())
}
