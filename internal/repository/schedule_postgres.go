package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zapis/internal/domain"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const windowColumns = `id, business_id, location_id, day_of_week, is_closed, open_time, close_time, ranges, created_at, updated_at`

// scanWindow разбирает строки времени в TimeOfDay прямо на границе слоя данных.
func scanWindow(row pgx.Row) (*domain.DayScheduleWindow, error) {
	var (
		window   domain.DayScheduleWindow
		open     string
		closeStr string
		ranges   []string
	)

	err := row.Scan(
		&window.ID,
		&window.BusinessID,
		&window.LocationID,
		&window.DayOfWeek,
		&window.IsClosed,
		&open,
		&closeStr,
		&ranges,
		&window.CreatedAt,
		&window.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if open != "" {
		window.OpenTime, err = domain.ParseTimeOfDay(open)
		if err != nil {
			return nil, err
		}
	}
	if closeStr != "" {
		window.CloseTime, err = domain.ParseTimeOfDay(closeStr)
		if err != nil {
			return nil, err
		}
	}

	window.Ranges, err = domain.ParseTimeRanges(ranges)
	if err != nil {
		return nil, err
	}

	return &window, nil
}

func (r *ScheduleRepo) ReplaceBusinessHours(ctx context.Context, businessID int64, locationID *int64, windows []domain.DayScheduleWindow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM business_hours WHERE business_id = $1 AND location_id IS NOT DISTINCT FROM $2`,
		businessID, locationID,
	)
	if err != nil {
		return fmt.Errorf("ошибка очистки рабочих часов: %w", err)
	}

	insertQuery := `
		INSERT INTO business_hours (business_id, location_id, day_of_week, is_closed, open_time, close_time, ranges, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	now := time.Now()
	for _, window := range windows {
		_, err = tx.Exec(ctx, insertQuery,
			businessID,
			locationID,
			window.DayOfWeek,
			window.IsClosed,
			window.OpenTime.String(),
			window.CloseTime.String(),
			domain.FormatTimeRanges(window.Ranges),
			now,
		)
		if err != nil {
			return fmt.Errorf("ошибка сохранения рабочих часов: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка коммита транзакции: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) GetBusinessHours(ctx context.Context, businessID int64, locationID *int64) ([]domain.DayScheduleWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM business_hours
		WHERE business_id = $1 AND location_id IS NOT DISTINCT FROM $2
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query, businessID, locationID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса рабочих часов: %w", err)
	}
	defer rows.Close()

	var windows []domain.DayScheduleWindow
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения рабочих часов: %w", err)
		}
		windows = append(windows, *window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return windows, nil
}

// GetWindowForDay возвращает окно дня с приоритетом локации:
// строка своей локации побеждает глобальную, при её отсутствии берётся глобальная.
func (r *ScheduleRepo) GetWindowForDay(ctx context.Context, businessID int64, locationID *int64, dayOfWeek int) (*domain.DayScheduleWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM business_hours
		WHERE business_id = $1 AND day_of_week = $2 AND (location_id IS NULL OR location_id = $3)
		ORDER BY location_id NULLS LAST
		LIMIT 1
	`

	window, err := scanWindow(r.db.QueryRow(ctx, query, businessID, dayOfWeek, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения рабочих часов: %w", err)
	}

	return window, nil
}

const overrideColumns = `id, offering_id, day_of_week, is_closed, ranges, created_at, updated_at`

func scanOverride(row pgx.Row) (*domain.ServiceScheduleOverride, error) {
	var (
		override domain.ServiceScheduleOverride
		ranges   []string
	)

	err := row.Scan(
		&override.ID,
		&override.OfferingID,
		&override.DayOfWeek,
		&override.IsClosed,
		&ranges,
		&override.CreatedAt,
		&override.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.Ranges, err = domain.ParseTimeRanges(ranges)
	if err != nil {
		return nil, err
	}

	return &override, nil
}

func (r *ScheduleRepo) UpsertOverride(ctx context.Context, override domain.ServiceScheduleOverride) error {
	query := `
		INSERT INTO offering_overrides (offering_id, day_of_week, is_closed, ranges, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (offering_id, day_of_week)
		DO UPDATE SET is_closed = EXCLUDED.is_closed, ranges = EXCLUDED.ranges, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		override.OfferingID,
		override.DayOfWeek,
		override.IsClosed,
		domain.FormatTimeRanges(override.Ranges),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения переопределения расписания: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) DeleteOverride(ctx context.Context, offeringID int64, dayOfWeek int) error {
	query := `DELETE FROM offering_overrides WHERE offering_id = $1 AND day_of_week = $2`

	_, err := r.db.Exec(ctx, query, offeringID, dayOfWeek)
	if err != nil {
		return fmt.Errorf("ошибка удаления переопределения расписания: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) GetOverrides(ctx context.Context, offeringID int64) ([]domain.ServiceScheduleOverride, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM offering_overrides
		WHERE offering_id = $1
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса переопределений расписания: %w", err)
	}
	defer rows.Close()

	var overrides []domain.ServiceScheduleOverride
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения переопределения расписания: %w", err)
		}
		overrides = append(overrides, *override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return overrides, nil
}

func (r *ScheduleRepo) GetOverrideForDay(ctx context.Context, offeringID int64, dayOfWeek int) (*domain.ServiceScheduleOverride, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM offering_overrides
		WHERE offering_id = $1 AND day_of_week = $2
	`

	override, err := scanOverride(r.db.QueryRow(ctx, query, offeringID, dayOfWeek))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения переопределения расписания: %w", err)
	}

	return override, nil
}

func (r *ScheduleRepo) CreateOffDay(ctx context.Context, offDay domain.OffDay) (int64, error) {
	var id int64
	query := `
		INSERT INTO off_days (business_id, location_id, date, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		offDay.BusinessID,
		offDay.LocationID,
		offDay.Date,
		offDay.Reason,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания выходного дня: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) DeleteOffDay(ctx context.Context, businessID, id int64) error {
	query := `DELETE FROM off_days WHERE id = $1 AND business_id = $2`

	_, err := r.db.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("ошибка удаления выходного дня: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) ListOffDays(ctx context.Context, businessID int64, locationID *int64, from, to time.Time) ([]domain.OffDay, error) {
	query := `
		SELECT id, business_id, location_id, date, reason, created_at
		FROM off_days
		WHERE business_id = $1 AND date >= $2 AND date <= $3
	`
	args := []interface{}{businessID, from, to}

	if locationID != nil {
		query += ` AND (location_id IS NULL OR location_id = $4)`
		args = append(args, *locationID)
	}

	query += ` ORDER BY date`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса выходных дней: %w", err)
	}
	defer rows.Close()

	var offDays []domain.OffDay
	for rows.Next() {
		var offDay domain.OffDay
		err := rows.Scan(
			&offDay.ID,
			&offDay.BusinessID,
			&offDay.LocationID,
			&offDay.Date,
			&offDay.Reason,
			&offDay.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения выходного дня: %w", err)
		}
		offDays = append(offDays, offDay)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return offDays, nil
}

func (r *ScheduleRepo) GetOffDaysForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.OffDay, error) {
	return r.ListOffDays(ctx, businessID, nil, date, date)
}

func (r *ScheduleRepo) CreateSlotBlock(ctx context.Context, block domain.SlotBlock) (int64, error) {
	var id int64
	query := `
		INSERT INTO slot_blocks (business_id, offering_id, date, start_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		block.BusinessID,
		block.OfferingID,
		block.Date,
		block.StartTime.String(),
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания блокировки слота: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) DeleteSlotBlock(ctx context.Context, businessID, id int64) error {
	query := `DELETE FROM slot_blocks WHERE id = $1 AND business_id = $2`

	_, err := r.db.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("ошибка удаления блокировки слота: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) GetSlotBlocks(ctx context.Context, offeringID int64, date time.Time) ([]domain.SlotBlock, error) {
	query := `
		SELECT id, business_id, offering_id, date, start_time, created_at
		FROM slot_blocks
		WHERE offering_id = $1 AND date = $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, offeringID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса блокировок слотов: %w", err)
	}
	defer rows.Close()

	return scanSlotBlocks(rows)
}

func (r *ScheduleRepo) ListSlotBlocks(ctx context.Context, businessID int64, from, to time.Time) ([]domain.SlotBlock, error) {
	query := `
		SELECT id, business_id, offering_id, date, start_time, created_at
		FROM slot_blocks
		WHERE business_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, start_time
	`

	rows, err := r.db.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса блокировок слотов: %w", err)
	}
	defer rows.Close()

	return scanSlotBlocks(rows)
}

func scanSlotBlocks(rows pgx.Rows) ([]domain.SlotBlock, error) {
	var blocks []domain.SlotBlock
	for rows.Next() {
		var (
			block domain.SlotBlock
			start string
		)
		err := rows.Scan(
			&block.ID,
			&block.BusinessID,
			&block.OfferingID,
			&block.Date,
			&start,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения блокировки слота: %w", err)
		}

		block.StartTime, err = domain.ParseTimeOfDay(start)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return blocks, nil
}
