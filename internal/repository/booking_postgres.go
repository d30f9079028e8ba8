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

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `b.id, b.business_id, b.offering_id, b.location_id, b.customer_name, b.customer_phone,
	b.customer_email, b.date, b.start_time, b.status, b.payment_id, b.comment, b.created_at, b.updated_at,
	o.name, COALESCE(l.name, '')`

const bookingJoins = ` FROM bookings b
	JOIN offerings o ON o.id = b.offering_id
	LEFT JOIN locations l ON l.id = b.location_id`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		booking domain.Booking
		start   string
	)

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.OfferingID,
		&booking.LocationID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CustomerEmail,
		&booking.Date,
		&start,
		&booking.Status,
		&booking.PaymentID,
		&booking.Comment,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.OfferingName,
		&booking.LocationName,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime, err = domain.ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepo) Create(ctx context.Context, booking domain.Booking) (int64, error) {
	var id int64
	query := `
		INSERT INTO bookings (business_id, offering_id, location_id, customer_name, customer_phone,
			customer_email, date, start_time, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		booking.BusinessID,
		booking.OfferingID,
		booking.LocationID,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.CustomerEmail,
		booking.Date,
		booking.StartTime.String(),
		booking.Status,
		booking.Comment,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания брони: %w", err)
	}

	return id, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения брони: %w", err)
	}

	return booking, nil
}

func (r *BookingRepo) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if update.Status != nil {
		setValues = append(setValues, fmt.Sprintf("status = $%d", argId))
		args = append(args, *update.Status)
		argId++
	}

	if update.Date != nil {
		setValues = append(setValues, fmt.Sprintf("date = $%d", argId))
		args = append(args, *update.Date)
		argId++
	}

	if update.StartTime != nil {
		setValues = append(setValues, fmt.Sprintf("start_time = $%d", argId))
		args = append(args, update.StartTime.String())
		argId++
	}

	if update.PaymentID != nil {
		setValues = append(setValues, fmt.Sprintf("payment_id = $%d", argId))
		args = append(args, *update.PaymentID)
		argId++
	}

	if update.Comment != nil {
		setValues = append(setValues, fmt.Sprintf("comment = $%d", argId))
		args = append(args, *update.Comment)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	query := "UPDATE bookings SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления брони: %w", err)
	}

	return nil
}

func bookingFilterConditions(filter domain.BookingFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.BusinessID != nil {
		conditions += fmt.Sprintf(" AND b.business_id = $%d", argPos)
		args = append(args, *filter.BusinessID)
		argPos++
	}

	if filter.OfferingID != nil {
		conditions += fmt.Sprintf(" AND b.offering_id = $%d", argPos)
		args = append(args, *filter.OfferingID)
		argPos++
	}

	if filter.LocationID != nil {
		conditions += fmt.Sprintf(" AND b.location_id = $%d", argPos)
		args = append(args, *filter.LocationID)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND b.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.ExcludeStatus != nil {
		conditions += fmt.Sprintf(" AND b.status != $%d", argPos)
		args = append(args, *filter.ExcludeStatus)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND b.date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND b.date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	return conditions, args
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	conditions, args := bookingFilterConditions(filter)

	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE 1=1` + conditions
	query += " ORDER BY b.date DESC, b.start_time DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка броней: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных брони: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	conditions, args := bookingFilterConditions(filter)

	var total int
	query := `SELECT COUNT(*) FROM bookings b WHERE 1=1` + conditions
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("ошибка получения количества броней: %w", err)
	}

	return total, nil
}

// GetActiveForDate возвращает брони дня, занимающие место в слотах.
func (r *BookingRepo) GetActiveForDate(ctx context.Context, businessID, offeringID int64, date time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + `
		WHERE b.business_id = $1 AND b.offering_id = $2 AND b.date = $3 AND b.status != $4
		ORDER BY b.start_time
	`

	rows, err := r.db.Query(ctx, query, businessID, offeringID, date, domain.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса броней: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных брони: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return bookings, nil
}
