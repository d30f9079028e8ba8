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

type BusinessRepo struct {
	db *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{db: db}
}

const businessColumns = `id, owner_id, name, slug, description, timezone, phone, logo_url, is_active, created_at, updated_at`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var business domain.Business
	err := row.Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Slug,
		&business.Description,
		&business.Timezone,
		&business.Phone,
		&business.LogoURL,
		&business.IsActive,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepo) Create(ctx context.Context, ownerID int64, dto domain.CreateBusinessDTO) (int64, error) {
	timezone := dto.Timezone
	if timezone == "" {
		timezone = "Europe/Moscow"
	}

	var id int64
	query := `
		INSERT INTO businesses (owner_id, name, slug, description, timezone, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		ownerID,
		dto.Name,
		dto.Slug,
		dto.Description,
		timezone,
		dto.Phone,
		true,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания бизнеса: %w", err)
	}

	return id, nil
}

func (r *BusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бизнес с id %d не найден", id)
		}
		return nil, fmt.Errorf("ошибка получения бизнеса: %w", err)
	}

	return business, nil
}

func (r *BusinessRepo) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE slug = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бизнес %q не найден", slug)
		}
		return nil, fmt.Errorf("ошибка получения бизнеса: %w", err)
	}

	return business, nil
}

func (r *BusinessRepo) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE owner_id = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бизнес владельца %d не найден", ownerID)
		}
		return nil, fmt.Errorf("ошибка получения бизнеса: %w", err)
	}

	return business, nil
}

func (r *BusinessRepo) Update(ctx context.Context, id int64, dto domain.UpdateBusinessDTO) error {
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

	if dto.Timezone != nil {
		setValues = append(setValues, fmt.Sprintf("timezone = $%d", argId))
		args = append(args, *dto.Timezone)
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

	query := "UPDATE businesses SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления бизнеса: %w", err)
	}

	return nil
}

func (r *BusinessRepo) UpdateLogo(ctx context.Context, id int64, logoURL *string) error {
	query := `UPDATE businesses SET logo_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, logoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления логотипа: %w", err)
	}

	return nil
}

func businessFilterConditions(filter domain.BusinessFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.OwnerID != nil {
		conditions += fmt.Sprintf(" AND owner_id = $%d", argPos)
		args = append(args, *filter.OwnerID)
		argPos++
	}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	return conditions, args
}

func (r *BusinessRepo) List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	conditions, args := businessFilterConditions(filter)

	query := `SELECT ` + businessColumns + ` FROM businesses WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка бизнесов: %w", err)
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных бизнеса: %w", err)
		}
		businesses = append(businesses, *business)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return businesses, nil
}

func (r *BusinessRepo) CountByFilter(ctx context.Context, filter domain.BusinessFilter) (int, error) {
	conditions, args := businessFilterConditions(filter)

	var total int
	query := `SELECT COUNT(*) FROM businesses WHERE 1=1` + conditions
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка получения количества бизнесов: %w", err)
	}

	return total, nil
}
