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

type OfferingRepo struct {
	db *pgxpool.Pool
}

func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepo {
	return &OfferingRepo{db: db}
}

const offeringColumns = `id, business_id, name, description, duration_minutes, buffer_minutes, slot_capacity, price, is_active, created_at, updated_at`

func scanOffering(row pgx.Row) (*domain.Offering, error) {
	var offering domain.Offering
	err := row.Scan(
		&offering.ID,
		&offering.BusinessID,
		&offering.Name,
		&offering.Description,
		&offering.DurationMinutes,
		&offering.BufferMinutes,
		&offering.SlotCapacity,
		&offering.Price,
		&offering.IsActive,
		&offering.CreatedAt,
		&offering.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *OfferingRepo) Create(ctx context.Context, businessID int64, dto domain.CreateOfferingDTO) (int64, error) {
	capacity := dto.SlotCapacity
	if capacity <= 0 {
		capacity = 1
	}

	var id int64
	query := `
		INSERT INTO offerings (business_id, name, description, duration_minutes, buffer_minutes, slot_capacity, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		businessID,
		dto.Name,
		dto.Description,
		dto.DurationMinutes,
		dto.BufferMinutes,
		capacity,
		dto.Price,
		true,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	return id, nil
}

func (r *OfferingRepo) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE id = $1`

	offering, err := scanOffering(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("услуга с id %d не найдена", id)
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	return offering, nil
}

func (r *OfferingRepo) Update(ctx context.Context, id int64, dto domain.UpdateOfferingDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argId))
		args = append(args, *dto.Description)
		argId++
	}

	if dto.DurationMinutes != nil {
		setValues = append(setValues, fmt.Sprintf("duration_minutes = $%d", argId))
		args = append(args, *dto.DurationMinutes)
		argId++
	}

	if dto.BufferMinutes != nil {
		setValues = append(setValues, fmt.Sprintf("buffer_minutes = $%d", argId))
		args = append(args, *dto.BufferMinutes)
		argId++
	}

	if dto.SlotCapacity != nil {
		setValues = append(setValues, fmt.Sprintf("slot_capacity = $%d", argId))
		args = append(args, *dto.SlotCapacity)
		argId++
	}

	if dto.Price != nil {
		setValues = append(setValues, fmt.Sprintf("price = $%d", argId))
		args = append(args, *dto.Price)
		argId++
	}

	if dto.IsActive != nil {
		setValues = append(setValues, fmt.Sprintf("is_active = $%d", argId))
		args = append(args, *dto.IsActive)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	query := "UPDATE offerings SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}

	return nil
}

func (r *OfferingRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE offerings SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}

	return nil
}

func offeringFilterConditions(filter domain.OfferingFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.BusinessID != nil {
		conditions += fmt.Sprintf(" AND business_id = $%d", argPos)
		args = append(args, *filter.BusinessID)
		argPos++
	}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	return conditions, args
}

func (r *OfferingRepo) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	conditions, args := offeringFilterConditions(filter)

	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка услуг: %w", err)
	}
	defer rows.Close()

	var offerings []domain.Offering
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных услуги: %w", err)
		}
		offerings = append(offerings, *offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return offerings, nil
}

func (r *OfferingRepo) CountByFilter(ctx context.Context, filter domain.OfferingFilter) (int, error) {
	conditions, args := offeringFilterConditions(filter)

	var total int
	query := `SELECT COUNT(*) FROM offerings WHERE 1=1` + conditions
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка получения количества услуг: %w", err)
	}

	return total, nil
}
