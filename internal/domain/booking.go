package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CountsAgainstCapacity: отменённые брони не занимают место в слоте.
func (s BookingStatus) CountsAgainstCapacity() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	ID            int64         `json:"id"`
	BusinessID    int64         `json:"business_id"`
	OfferingID    int64         `json:"offering_id"`
	LocationID    *int64        `json:"location_id,omitempty"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	Date          time.Time     `json:"date"`
	StartTime     TimeOfDay     `json:"start_time"`
	Status        BookingStatus `json:"status"`
	PaymentID     *string       `json:"payment_id,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	OfferingName  string        `json:"offering_name,omitempty"`
	LocationName  string        `json:"location_name,omitempty"`
}

type CreateBookingDTO struct {
	BusinessID    int64  `json:"business_id" binding:"required"`
	OfferingID    int64  `json:"offering_id" binding:"required"`
	LocationID    *int64 `json:"location_id"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	Comment       string `json:"comment"`
}

type UpdateBookingDTO struct {
	Status    *BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Date      *string        `json:"date"`
	StartTime *string        `json:"start_time"`
	PaymentID *string        `json:"payment_id"`
	Comment   *string        `json:"comment"`
}

// BookingUpdate — типизированная версия UpdateBookingDTO после разбора дат и времени.
type BookingUpdate struct {
	Status    *BookingStatus
	Date      *time.Time
	StartTime *TimeOfDay
	PaymentID *string
	Comment   *string
}

type BookingFilter struct {
	BusinessID    *int64         `json:"business_id"`
	OfferingID    *int64         `json:"offering_id"`
	LocationID    *int64         `json:"location_id"`
	Status        *BookingStatus `json:"status"`
	ExcludeStatus *BookingStatus `json:"exclude_status"`
	StartDate     *time.Time     `json:"start_date"`
	EndDate       *time.Time     `json:"end_date"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
}
