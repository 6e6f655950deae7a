// Package badges — repository.go работает с таблицами badges, badge_types и user_badges.
package badges

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/points"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpdateProgress записывает прогресс по всем значкам типа.
// Уже заработанные значки не трогаются. Возвращает ID значков, заработанных этим вызовом.
func (r *Repository) UpdateProgress(ctx context.Context, userID uuid.UUID, badgeType Type, progress int) ([]int64, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id, progress, is_achieved, achieved_at)
		SELECT $1, b.id, $3, $3 >= b.requirement,
		       CASE WHEN $3 >= b.requirement THEN NOW() END
		FROM badges b
		WHERE b.badge_type_id = $2
		ORDER BY b.level
		ON CONFLICT (user_id, badge_id) DO UPDATE
		SET progress = EXCLUDED.progress,
		    is_achieved = EXCLUDED.is_achieved,
		    achieved_at = EXCLUDED.achieved_at
		WHERE user_badges.is_achieved = FALSE
		RETURNING badge_id, is_achieved
	`
	rows, err := r.db.Query(ctx, query, userID, int(badgeType), progress)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления прогресса значков: %w", err)
	}
	defer rows.Close()

	var achieved []int64
	for rows.Next() {
		var id int64
		var ok bool
		if err := rows.Scan(&id, &ok); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		if ok {
			achieved = append(achieved, id)
		}
	}
	return achieved, rows.Err()
}

// ListForUser возвращает все значки каталога с прогрессом пользователя.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Status, error) {
	query := `
		SELECT b.id, b.badge_type_id, bt.name, b.name, b.level, b.requirement, b.points,
		       COALESCE(ub.progress, 0), COALESCE(ub.is_achieved, FALSE),
		       ub.achieved_at, ub.claimed_at
		FROM badges b
		JOIN badge_types bt ON bt.id = b.badge_type_id
		LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = $1
		ORDER BY b.badge_type_id, b.level
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения значков: %w", err)
	}
	defer rows.Close()

	var out []Status
	for rows.Next() {
		var s Status
		if err := rows.Scan(
			&s.ID, &s.TypeID, &s.TypeName, &s.Name, &s.Level, &s.Requirement, &s.Points,
			&s.Progress, &s.IsAchieved, &s.AchievedAt, &s.ClaimedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования значка: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Claim отмечает награду полученной и начисляет очки значка. Одна транзакция.
func (r *Repository) Claim(ctx context.Context, userID uuid.UUID, badgeID int64) (*ClaimResult, error) {
	var result *ClaimResult
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var name string
		var reward int64
		err := tx.QueryRow(ctx,
			`SELECT name, points FROM badges WHERE id = $1`, badgeID,
		).Scan(&name, &reward)
		if err != nil {
			if postgres.IsNoRows(err) {
				return fmt.Errorf("значок %d: %w", badgeID, common.ErrNotFound)
			}
			return fmt.Errorf("ошибка чтения значка: %w", err)
		}

		var achieved, claimed bool
		err = tx.QueryRow(ctx, `
			SELECT is_achieved, claimed_at IS NOT NULL
			FROM user_badges
			WHERE user_id = $1 AND badge_id = $2
			FOR UPDATE
		`, userID, badgeID).Scan(&achieved, &claimed)
		if err != nil && !postgres.IsNoRows(err) {
			return fmt.Errorf("ошибка чтения прогресса значка: %w", err)
		}
		if !achieved {
			return common.ErrBadgeNotAchieved
		}
		if claimed {
			return common.ErrBadgeAlreadyClaimed
		}

		if _, err := tx.Exec(ctx, `
			UPDATE user_badges SET claimed_at = NOW()
			WHERE user_id = $1 AND badge_id = $2
		`, userID, badgeID); err != nil {
			return fmt.Errorf("ошибка отметки награды: %w", err)
		}

		if reward > 0 {
			if err := points.Credit(ctx, tx, userID, reward, points.TxTypeBadgeClaim, "Значок: "+name); err != nil {
				return err
			}
		}
		result = &ClaimResult{BadgeID: badgeID, Points: reward}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Create добавляет значок в каталог.
func (r *Repository) Create(ctx context.Context, b NewBadge) (*Badge, error) {
	query := `
		INSERT INTO badges (badge_type_id, name, level, requirement, points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, badge_type_id, name, level, requirement, points
	`
	var out Badge
	err := r.db.QueryRow(ctx, query, int(b.TypeID), b.Name, b.Level, b.Requirement, b.Points).Scan(
		&out.ID, &out.TypeID, &out.Name, &out.Level, &out.Requirement, &out.Points,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("тип значка %d: %w", b.TypeID, common.ErrInvalidInput)
		}
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("уровень %d уже есть у типа %d: %w", b.Level, b.TypeID, common.ErrInvalidInput)
		}
		return nil, fmt.Errorf("ошибка создания значка: %w", err)
	}
	return &out, nil
}
