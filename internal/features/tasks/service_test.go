package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// --- fakes ---

type memStore struct {
	mu      sync.Mutex
	catalog []CatalogEntry
	sets    map[string]*DailyTaskSet
	inserts int

	// beforeInsert вызывается перед вставкой — для имитации гонки.
	beforeInsert func(userID uuid.UUID, date time.Time)
}

func newMemStore(catalogSize int) *memStore {
	s := &memStore{sets: make(map[string]*DailyTaskSet)}
	for i := 1; i <= catalogSize; i++ {
		s.catalog = append(s.catalog, CatalogEntry{ID: int64(i), Title: fmt.Sprintf("task-%d", i), IsActive: true})
	}
	return s
}

func setKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + "/" + common.FormatDate(date)
}

func (s *memStore) put(userID uuid.UUID, date time.Time, ids [SlotsPerDay]int64) {
	set := &DailyTaskSet{ID: int64(len(s.sets) + 1), UserID: userID, CreatedDate: common.DateOf(date)}
	for i, id := range ids {
		set.Slots[i] = Slot{Number: i + 1, TaskID: id}
	}
	s.sets[setKey(userID, date)] = set
}

func (s *memStore) GetByDate(_ context.Context, userID uuid.UUID, date time.Time) (*DailyTaskSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[setKey(userID, date)]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *set
	return &cp, nil
}

func (s *memStore) InsertIfAbsent(_ context.Context, userID uuid.UUID, date time.Time, ids [SlotsPerDay]int64) (bool, error) {
	if s.beforeInsert != nil {
		s.beforeInsert(userID, date)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[setKey(userID, date)]; ok {
		return false, nil
	}
	s.put(userID, date, ids)
	s.inserts++
	return true, nil
}

func (s *memStore) ListRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTaskSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DailyTaskSet
	for d := from; !d.After(to); d = common.AddDays(d, 1) {
		if set, ok := s.sets[setKey(userID, d)]; ok {
			out = append(out, *set)
		}
	}
	return out, nil
}

func (s *memStore) Toggle(_ context.Context, userID uuid.UUID, date time.Time, slot int) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[setKey(userID, date)]
	if !ok {
		return nil, common.ErrNotFound
	}
	was := set.AllCompleted()
	set.Slots[slot-1].Completed = !set.Slots[slot-1].Completed
	cp := *set
	return &ToggleResult{
		Set:             &cp,
		Slot:            slot,
		Completed:       set.Slots[slot-1].Completed,
		AllCompleted:    set.AllCompleted(),
		WasAllCompleted: was,
		TotalCompleted:  set.CompletedCount(),
	}, nil
}

func (s *memStore) CountActiveDays(_ context.Context, _ uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets), nil
}

func (s *memStore) ListCatalog(_ context.Context, _ bool) ([]CatalogEntry, error) {
	return append([]CatalogEntry(nil), s.catalog...), nil
}

func (s *memStore) AddCatalogEntry(_ context.Context, title, icon string) (*CatalogEntry, error) {
	e := CatalogEntry{ID: int64(len(s.catalog) + 1), Title: title, Icon: icon, IsActive: true}
	s.catalog = append(s.catalog, e)
	return &e, nil
}

func (s *memStore) DeactivateCatalogEntry(_ context.Context, id int64) error {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			s.catalog[i].IsActive = false
			return nil
		}
	}
	return common.ErrNotFound
}

// reverseShuffle — детерминированная "перестановка": разворачивает срез.
func reverseShuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

var testDay = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	clock := common.NewFixedClock(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))
	return NewService(store, clock).WithShuffle(reverseShuffle)
}

// --- tests ---

func TestEnsureTodaySet_Idempotent(t *testing.T) {
	store := newMemStore(8)
	svc := newTestService(store)
	user := uuid.New()

	first, err := svc.EnsureTodaySet(context.Background(), user, testDay)
	if err != nil {
		t.Fatalf("EnsureTodaySet() err=%v", err)
	}
	second, err := svc.EnsureTodaySet(context.Background(), user, testDay)
	if err != nil {
		t.Fatalf("EnsureTodaySet() second err=%v", err)
	}

	if store.inserts != 1 {
		t.Fatalf("inserts=%d, want 1", store.inserts)
	}
	if first.ID != second.ID || first.Slots != second.Slots {
		t.Fatalf("second call returned a different set: %+v vs %+v", first, second)
	}
	for _, slot := range first.Slots {
		if slot.Completed {
			t.Fatalf("slot %d completed on a fresh set", slot.Number)
		}
	}
}

func TestEnsureTodaySet_PicksShuffledPrefix(t *testing.T) {
	store := newMemStore(8)
	svc := newTestService(store)

	set, err := svc.EnsureTodaySet(context.Background(), uuid.New(), testDay)
	if err != nil {
		t.Fatalf("EnsureTodaySet() err=%v", err)
	}

	want := [SlotsPerDay]int64{8, 7, 6, 5, 4}
	for i, slot := range set.Slots {
		if slot.TaskID != want[i] {
			t.Fatalf("slot %d task=%d, want %d", i+1, slot.TaskID, want[i])
		}
	}
}

func TestEnsureTodaySet_CatalogExhausted(t *testing.T) {
	store := newMemStore(4)
	svc := newTestService(store)

	_, err := svc.EnsureTodaySet(context.Background(), uuid.New(), testDay)
	if !errors.Is(err, common.ErrCatalogExhausted) {
		t.Fatalf("err=%v, want %v", err, common.ErrCatalogExhausted)
	}
	if store.inserts != 0 {
		t.Fatalf("inserts=%d, want 0", store.inserts)
	}
}

func TestEnsureTodaySet_LosesRaceReturnsWinner(t *testing.T) {
	store := newMemStore(6)
	svc := newTestService(store)
	user := uuid.New()

	winner := [SlotsPerDay]int64{1, 2, 3, 4, 5}
	store.beforeInsert = func(u uuid.UUID, d time.Time) {
		store.mu.Lock()
		store.put(u, d, winner)
		store.mu.Unlock()
		store.beforeInsert = nil
	}

	set, err := svc.EnsureTodaySet(context.Background(), user, testDay)
	if err != nil {
		t.Fatalf("EnsureTodaySet() err=%v", err)
	}
	for i, slot := range set.Slots {
		if slot.TaskID != winner[i] {
			t.Fatalf("slot %d task=%d, want winner's %d", i+1, slot.TaskID, winner[i])
		}
	}
	if store.inserts != 0 {
		t.Fatalf("inserts=%d, want 0 (the concurrent row wins)", store.inserts)
	}
}

func TestEnsureTodaySet_ConcurrentCallsSingleRow(t *testing.T) {
	store := newMemStore(10)
	svc := NewService(store, common.NewFixedClock(testDay))
	user := uuid.New()

	var wg sync.WaitGroup
	results := make([]*DailyTaskSet, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := svc.EnsureTodaySet(context.Background(), user, testDay)
			if err != nil {
				t.Errorf("EnsureTodaySet() err=%v", err)
				return
			}
			results[i] = set
		}(i)
	}
	wg.Wait()

	if store.inserts != 1 {
		t.Fatalf("inserts=%d, want 1", store.inserts)
	}
	for _, set := range results {
		if set != nil && set.Slots != results[0].Slots {
			t.Fatalf("callers saw different sets")
		}
	}
}

func TestPickTasks_Distinct(t *testing.T) {
	catalog := newMemStore(12).catalog
	svc := NewService(nil, common.NewFixedClock(testDay))

	for run := 0; run < 200; run++ {
		ids, err := PickTasks(catalog, svc.shuffle)
		if err != nil {
			t.Fatalf("PickTasks() err=%v", err)
		}
		seen := make(map[int64]bool)
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("run %d: duplicate task %d in %v", run, id, ids)
			}
			seen[id] = true
		}
	}
}

func TestPickTasks_DoesNotMutateCatalog(t *testing.T) {
	catalog := newMemStore(6).catalog
	if _, err := PickTasks(catalog, reverseShuffle); err != nil {
		t.Fatalf("PickTasks() err=%v", err)
	}
	for i, e := range catalog {
		if e.ID != int64(i+1) {
			t.Fatalf("catalog reordered: %v", catalog)
		}
	}
}

func TestEnsureTodaySet_NotifiesOnlyOnCreate(t *testing.T) {
	store := newMemStore(5)
	svc := newTestService(store)

	var calls []int
	svc.OnAssign(func(_ context.Context, _ uuid.UUID, days int) { calls = append(calls, days) })

	user := uuid.New()
	for i := 0; i < 3; i++ {
		if _, err := svc.EnsureTodaySet(context.Background(), user, testDay); err != nil {
			t.Fatalf("EnsureTodaySet() err=%v", err)
		}
	}
	if len(calls) != 1 || calls[0] != 1 {
		t.Fatalf("assign hook calls=%v, want [1]", calls)
	}
}

func TestToggleToday(t *testing.T) {
	store := newMemStore(5)
	svc := newTestService(store)
	user := uuid.New()

	if _, err := svc.Today(context.Background(), user); err != nil {
		t.Fatalf("Today() err=%v", err)
	}

	var last ToggleResult
	svc.OnToggle(func(_ context.Context, _ uuid.UUID, r ToggleResult) { last = r })

	for slot := 1; slot <= SlotsPerDay; slot++ {
		res, err := svc.ToggleToday(context.Background(), user, slot)
		if err != nil {
			t.Fatalf("ToggleToday(%d) err=%v", slot, err)
		}
		if !res.Completed {
			t.Fatalf("slot %d not completed after toggle", slot)
		}
	}
	if !last.AllCompleted || !last.DayCompletionChanged() {
		t.Fatalf("last toggle=%+v, want day completed", last)
	}

	res, err := svc.ToggleToday(context.Background(), user, 3)
	if err != nil {
		t.Fatalf("ToggleToday(3) err=%v", err)
	}
	if res.Completed || res.AllCompleted || !res.DayCompletionChanged() {
		t.Fatalf("untoggle result=%+v", res)
	}
}

func TestToggleToday_InvalidSlot(t *testing.T) {
	svc := newTestService(newMemStore(5))
	for _, slot := range []int{0, 6, -1} {
		if _, err := svc.ToggleToday(context.Background(), uuid.New(), slot); !errors.Is(err, common.ErrInvalidSlot) {
			t.Fatalf("ToggleToday(%d) err=%v, want %v", slot, err, common.ErrInvalidSlot)
		}
	}
}

func TestToggleToday_NoSet(t *testing.T) {
	svc := newTestService(newMemStore(5))
	if _, err := svc.ToggleToday(context.Background(), uuid.New(), 1); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err=%v, want %v", err, common.ErrNotFound)
	}
}

func TestHistory_Validation(t *testing.T) {
	svc := newTestService(newMemStore(5))
	user := uuid.New()

	if _, err := svc.History(context.Background(), user, testDay, common.AddDays(testDay, -1)); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("reversed range err=%v, want %v", err, common.ErrInvalidInput)
	}
	if _, err := svc.History(context.Background(), user, common.AddDays(testDay, -400), testDay); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("long range err=%v, want %v", err, common.ErrInvalidInput)
	}

	sets, err := svc.History(context.Background(), user, common.AddDays(testDay, -7), testDay)
	if err != nil {
		t.Fatalf("History() err=%v", err)
	}
	if sets == nil || len(sets) != 0 {
		t.Fatalf("History()=%v, want empty non-nil slice", sets)
	}
}
