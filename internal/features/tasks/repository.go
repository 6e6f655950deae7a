// Package tasks — repository.go работает с таблицами tasks (каталог) и completed_tasks (дневные наборы).
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
)

// setColumns — колонки набора вместе с деталями пяти заданий из каталога.
// Порядок должен совпадать с scanSet.
var setColumns = buildSetColumns()

// setJoins присоединяет каталог к каждому из пяти слотов.
var setJoins = buildSetJoins()

func buildSetColumns() string {
	cols := []string{"ct.completed_task_id", "ct.user_id", "ct.created_date"}
	for i := 1; i <= SlotsPerDay; i++ {
		cols = append(cols,
			fmt.Sprintf("ct.task%d_id", i),
			fmt.Sprintf("ct.task%d_completed", i),
			fmt.Sprintf("t%d.taskname", i),
			fmt.Sprintf("t%d.taskicon", i),
			fmt.Sprintf("t%d.is_active", i),
		)
	}
	cols = append(cols, "ct.created_at", "ct.updated_at")
	return strings.Join(cols, ", ")
}

func buildSetJoins() string {
	var b strings.Builder
	for i := 1; i <= SlotsPerDay; i++ {
		fmt.Fprintf(&b, " JOIN tasks t%d ON t%d.id = ct.task%d_id", i, i, i)
	}
	return b.String()
}

// scanSet читает одну строку с колонками setColumns.
func scanSet(row pgx.Row) (*DailyTaskSet, error) {
	var s DailyTaskSet
	dest := []any{&s.ID, &s.UserID, &s.CreatedDate}
	for i := range s.Slots {
		slot := &s.Slots[i]
		slot.Number = i + 1
		slot.Task = &CatalogEntry{}
		dest = append(dest,
			&slot.TaskID, &slot.Completed,
			&slot.Task.Title, &slot.Task.Icon, &slot.Task.IsActive,
		)
	}
	dest = append(dest, &s.CreatedAt, &s.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for i := range s.Slots {
		s.Slots[i].Task.ID = s.Slots[i].TaskID
	}
	s.CreatedDate = common.DateOf(s.CreatedDate)
	return &s, nil
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByDate возвращает набор пользователя на дату вместе с деталями заданий.
// Если набора нет — common.ErrNotFound.
func (r *Repository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyTaskSet, error) {
	return getByDate(ctx, r.db, userID, date)
}

func getByDate(ctx context.Context, q postgres.Querier, userID uuid.UUID, date time.Time) (*DailyTaskSet, error) {
	query := `SELECT ` + setColumns + ` FROM completed_tasks ct` + setJoins + `
		WHERE ct.user_id = $1 AND ct.created_date = $2`

	set, err := scanSet(q.QueryRow(ctx, query, userID, common.DateOf(date)))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("набор на %s: %w", common.FormatDate(date), common.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения набора заданий: %w", err)
	}
	return set, nil
}

// InsertIfAbsent создаёт набор на дату. Если набор уже есть (параллельный запрос
// успел раньше), ничего не меняет и возвращает false.
func (r *Repository) InsertIfAbsent(ctx context.Context, userID uuid.UUID, date time.Time, taskIDs [SlotsPerDay]int64) (bool, error) {
	query := `
		INSERT INTO completed_tasks (user_id, created_date, task1_id, task2_id, task3_id, task4_id, task5_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, created_date) DO NOTHING
		RETURNING completed_task_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userID, common.DateOf(date),
		taskIDs[0], taskIDs[1], taskIDs[2], taskIDs[3], taskIDs[4],
	).Scan(&id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка создания набора заданий: %w", err)
	}
	return true, nil
}

// ListRange возвращает наборы пользователя за [from, to] по возрастанию даты.
func (r *Repository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyTaskSet, error) {
	query := `SELECT ` + setColumns + ` FROM completed_tasks ct` + setJoins + `
		WHERE ct.user_id = $1 AND ct.created_date BETWEEN $2 AND $3
		ORDER BY ct.created_date ASC`

	rows, err := r.db.Query(ctx, query, userID, common.DateOf(from), common.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории заданий: %w", err)
	}
	defer rows.Close()

	var sets []DailyTaskSet
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования набора: %w", err)
		}
		sets = append(sets, *set)
	}
	return sets, rows.Err()
}

// ListCompletionFlags возвращает флаги выполнения наборов за [from, to] без деталей каталога.
// Ключ — календарная дата. Этого достаточно для расчёта серии.
func (r *Repository) ListCompletionFlags(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[time.Time][SlotsPerDay]bool, error) {
	query := `
		SELECT created_date, task1_completed, task2_completed, task3_completed, task4_completed, task5_completed
		FROM completed_tasks
		WHERE user_id = $1 AND created_date BETWEEN $2 AND $3
	`
	rows, err := r.db.Query(ctx, query, userID, common.DateOf(from), common.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("ошибка получения наборов для серии: %w", err)
	}
	defer rows.Close()

	flags := make(map[time.Time][SlotsPerDay]bool)
	for rows.Next() {
		var date time.Time
		var f [SlotsPerDay]bool
		if err := rows.Scan(&date, &f[0], &f[1], &f[2], &f[3], &f[4]); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		flags[common.DateOf(date)] = f
	}
	return flags, rows.Err()
}

// Toggle инвертирует флаг выполнения задания в слоте и корректирует счётчик
// profiles.completed_tasks. Всё в одной транзакции.
func (r *Repository) Toggle(ctx context.Context, userID uuid.UUID, date time.Time, slot int) (*ToggleResult, error) {
	if slot < 1 || slot > SlotsPerDay {
		return nil, fmt.Errorf("слот %d: %w", slot, common.ErrInvalidSlot)
	}
	column := fmt.Sprintf("task%d_completed", slot)
	day := common.DateOf(date)

	var result *ToggleResult
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		before, err := getByDate(ctx, tx, userID, day)
		if err != nil {
			return err
		}

		var completed bool
		err = tx.QueryRow(ctx,
			`UPDATE completed_tasks SET `+column+` = NOT `+column+`, updated_at = NOW()
			 WHERE user_id = $1 AND created_date = $2
			 RETURNING `+column,
			userID, day,
		).Scan(&completed)
		if err != nil {
			return fmt.Errorf("ошибка переключения задания: %w", err)
		}

		delta := -1
		if completed {
			delta = 1
		}
		var total int
		err = tx.QueryRow(ctx, `
			UPDATE profiles
			SET completed_tasks = GREATEST(completed_tasks + $2, 0), updated_at = NOW()
			WHERE id = $1
			RETURNING completed_tasks
		`, userID, delta).Scan(&total)
		if err != nil {
			if postgres.IsNoRows(err) {
				return fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
			}
			return fmt.Errorf("ошибка обновления счётчика заданий: %w", err)
		}

		after, err := getByDate(ctx, tx, userID, day)
		if err != nil {
			return err
		}

		result = &ToggleResult{
			Set:             after,
			Slot:            slot,
			Completed:       completed,
			AllCompleted:    after.AllCompleted(),
			WasAllCompleted: before.AllCompleted(),
			TotalCompleted:  total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountActiveDays — сколько дней пользователь получал набор заданий.
func (r *Repository) CountActiveDays(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM completed_tasks WHERE user_id = $1`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта активных дней: %w", err)
	}
	return n, nil
}

// ListCatalog возвращает каталог заданий. activeOnly — только активные (для раздачи).
func (r *Repository) ListCatalog(ctx context.Context, activeOnly bool) ([]CatalogEntry, error) {
	query := `
		SELECT id, taskname, taskicon, is_active, created_at
		FROM tasks
		WHERE ($1::boolean = FALSE OR is_active)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения каталога заданий: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Icon, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddCatalogEntry добавляет задание в каталог.
func (r *Repository) AddCatalogEntry(ctx context.Context, title, icon string) (*CatalogEntry, error) {
	query := `
		INSERT INTO tasks (taskname, taskicon)
		VALUES ($1, $2)
		RETURNING id, taskname, taskicon, is_active, created_at
	`
	var e CatalogEntry
	err := r.db.QueryRow(ctx, query, title, icon).Scan(&e.ID, &e.Title, &e.Icon, &e.IsActive, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка добавления задания в каталог: %w", err)
	}
	return &e, nil
}

// DeactivateCatalogEntry выключает задание: оно больше не раздаётся,
// но уже выданные наборы на него продолжают ссылаться.
func (r *Repository) DeactivateCatalogEntry(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка отключения задания: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("задание %d: %w", id, common.ErrNotFound)
	}
	return nil
}
