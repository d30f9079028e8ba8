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

type LocationRepo struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{db: db}
}

const locationColumns = `id, business_id, name, address, phone, is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var location domain.Location
	err := row.Scan(
		&location.ID,
		&location.BusinessID,
		&location.Name,
		&location.Address,
		&location.Phone,
		&location.IsActive,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepo) Create(ctx context.Context, businessID int64, dto domain.CreateLocationDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO locations (business_id, name, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, businessID, dto.Name, dto.Address, dto.Phone, true, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания локации: %w", err)
	}

	return id, nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	location, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("локация с id %d не найдена", id)
		}
		return nil, fmt.Errorf("ошибка получения локации: %w", err)
	}

	return location, nil
}

func (r *LocationRepo) Update(ctx context.Context, id int64, dto domain.UpdateLocationDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Address != nil {
		setValues = append(setValues, fmt.Sprintf("address = $%d", argId))
		args = append(args, *dto.Address)
		argId++
	}

	if dto.Phone != nil {
		setValues = append(setValues, fmt.Sprintf("phone = $%d", argId))
		args = append(args, *dto.Phone)
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

	query := "UPDATE locations SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления локации: %w", err)
	}

	return nil
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE locations SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления локации: %w", err)
	}

	return nil
}

func (r *LocationRepo) ListByBusinessID(ctx context.Context, businessID int64) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE business_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка локаций: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных локации: %w", err)
		}
		locations = append(locations, *location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return locations, nil
}
