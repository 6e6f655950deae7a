// Package tasks — service.go содержит бизнес-логику дневных наборов:
// раздача пяти случайных заданий, переключение выполнения, история.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// maxHistoryDays — максимальная длина запрашиваемого периода истории.
const maxHistoryDays = 366

// Store — операции хранилища, которые нужны сервису.
type Store interface {
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyTaskSet, error)
	InsertIfAbsent(ctx context.Context, userID uuid.UUID, date time.Time, taskIDs [SlotsPerDay]int64) (bool, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTaskSet, error)
	Toggle(ctx context.Context, userID uuid.UUID, date time.Time, slot int) (*ToggleResult, error)
	CountActiveDays(ctx context.Context, userID uuid.UUID) (int, error)
	ListCatalog(ctx context.Context, activeOnly bool) ([]CatalogEntry, error)
	AddCatalogEntry(ctx context.Context, title, icon string) (*CatalogEntry, error)
	DeactivateCatalogEntry(ctx context.Context, id int64) error
}

// ToggleHook вызывается после успешного переключения задания.
type ToggleHook func(ctx context.Context, userID uuid.UUID, result ToggleResult)

// AssignHook вызывается после создания нового дневного набора.
// activeDays — сколько всего дней пользователь получал набор.
type AssignHook func(ctx context.Context, userID uuid.UUID, activeDays int)

// ShuffleFunc переставляет n элементов через swap. Совместима с rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

type Service struct {
	store   Store
	clock   *common.Clock
	shuffle ShuffleFunc

	onToggle []ToggleHook
	onAssign []AssignHook
}

func NewService(store Store, clock *common.Clock) *Service {
	return &Service{
		store:   store,
		clock:   clock,
		shuffle: rand.Shuffle,
	}
}

// WithShuffle подменяет перемешивание каталога (в тестах — детерминированное).
func (s *Service) WithShuffle(fn ShuffleFunc) *Service {
	s.shuffle = fn
	return s
}

// OnToggle подписывает обработчик на переключение заданий.
func (s *Service) OnToggle(hook ToggleHook) {
	s.onToggle = append(s.onToggle, hook)
}

// OnAssign подписывает обработчик на выдачу нового набора.
func (s *Service) OnAssign(hook AssignHook) {
	s.onAssign = append(s.onAssign, hook)
}

// Today возвращает сегодняшний набор пользователя, создавая его при первом обращении за день.
func (s *Service) Today(ctx context.Context, userID uuid.UUID) (*DailyTaskSet, error) {
	return s.EnsureTodaySet(ctx, userID, s.clock.Today())
}

// EnsureTodaySet гарантирует, что у пользователя есть ровно один набор на дату today.
//
// Если набор уже есть — возвращает его без изменений. Иначе выбирает 5 случайных
// заданий из активного каталога и вставляет набор. Вставка атомарна
// (ON CONFLICT DO NOTHING): если параллельный запрос успел раньше, возвращаем его набор.
func (s *Service) EnsureTodaySet(ctx context.Context, userID uuid.UUID, today time.Time) (*DailyTaskSet, error) {
	today = common.DateOf(today)

	existing, err := s.store.GetByDate(ctx, userID, today)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	catalog, err := s.store.ListCatalog(ctx, true)
	if err != nil {
		return nil, err
	}
	picked, err := PickTasks(catalog, s.shuffle)
	if err != nil {
		return nil, err
	}

	created, err := s.store.InsertIfAbsent(ctx, userID, today, picked)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"user_id": userID,
		"date":    common.FormatDate(today),
	})
	if created {
		logger.WithField("task_ids", picked).Info("Выдан новый набор заданий")
		s.notifyAssigned(ctx, userID)
	} else {
		logger.WithError(common.ErrDuplicateAssignment).Info("Набор уже создан параллельным запросом, берём его")
	}

	return s.store.GetByDate(ctx, userID, today)
}

// PickTasks перемешивает каталог и берёт первые SlotsPerDay заданий.
// Каталог из уникальных записей даёт пять разных заданий.
func PickTasks(catalog []CatalogEntry, shuffle ShuffleFunc) ([SlotsPerDay]int64, error) {
	var ids [SlotsPerDay]int64
	if len(catalog) < SlotsPerDay {
		return ids, fmt.Errorf("в каталоге %d заданий, нужно %d: %w", len(catalog), SlotsPerDay, common.ErrCatalogExhausted)
	}

	pool := make([]int64, len(catalog))
	for i, e := range catalog {
		pool[i] = e.ID
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	copy(ids[:], pool[:SlotsPerDay])
	return ids, nil
}

// ToggleToday переключает задание slot в сегодняшнем наборе.
func (s *Service) ToggleToday(ctx context.Context, userID uuid.UUID, slot int) (*ToggleResult, error) {
	if slot < 1 || slot > SlotsPerDay {
		return nil, fmt.Errorf("слот %d: %w", slot, common.ErrInvalidSlot)
	}

	result, err := s.store.Toggle(ctx, userID, s.clock.Today(), slot)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":       userID,
		"slot":          slot,
		"completed":     result.Completed,
		"all_completed": result.AllCompleted,
	}).Debug("Задание переключено")

	for _, hook := range s.onToggle {
		hook(ctx, userID, *result)
	}
	return result, nil
}

// History возвращает наборы за период [from, to] по возрастанию даты.
func (s *Service) History(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTaskSet, error) {
	from, to = common.DateOf(from), common.DateOf(to)
	if to.Before(from) {
		return nil, fmt.Errorf("конец периода раньше начала: %w", common.ErrInvalidInput)
	}
	if to.Sub(from) > maxHistoryDays*24*time.Hour {
		return nil, fmt.Errorf("период длиннее %d дней: %w", maxHistoryDays, common.ErrInvalidInput)
	}
	sets, err := s.store.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []DailyTaskSet{}
	}
	return sets, nil
}

// Catalog возвращает весь каталог, включая отключённые задания.
func (s *Service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	entries, err := s.store.ListCatalog(ctx, false)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []CatalogEntry{}
	}
	return entries, nil
}

// AddCatalogEntry добавляет задание в каталог.
func (s *Service) AddCatalogEntry(ctx context.Context, title, icon string) (*CatalogEntry, error) {
	entry, err := s.store.AddCatalogEntry(ctx, title, icon)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"task_id": entry.ID, "title": entry.Title}).Info("Задание добавлено в каталог")
	return entry, nil
}

// DeactivateCatalogEntry выключает задание из раздачи.
func (s *Service) DeactivateCatalogEntry(ctx context.Context, id int64) error {
	if err := s.store.DeactivateCatalogEntry(ctx, id); err != nil {
		return err
	}
	log.WithField("task_id", id).Info("Задание отключено")
	return nil
}

func (s *Service) notifyAssigned(ctx context.Context, userID uuid.UUID) {
	if len(s.onAssign) == 0 {
		return
	}
	days, err := s.store.CountActiveDays(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось посчитать активные дни")
		return
	}
	for _, hook := range s.onAssign {
		hook(ctx, userID, days)
	}
}
