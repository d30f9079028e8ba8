package domain

import (
	"time"
)

// Offering — услуга, на которую открыта запись.
// SlotCapacity > 1 моделирует групповые услуги с несколькими записями на одно время.
type Offering struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"business_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	BufferMinutes   int       `json:"buffer_minutes"`
	SlotCapacity    int       `json:"slot_capacity"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateOfferingDTO struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	BufferMinutes   int     `json:"buffer_minutes"`
	SlotCapacity    int     `json:"slot_capacity"`
	Price           float64 `json:"price"`
}

type UpdateOfferingDTO struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	BufferMinutes   *int     `json:"buffer_minutes"`
	SlotCapacity    *int     `json:"slot_capacity"`
	Price           *float64 `json:"price"`
	IsActive        *bool    `json:"is_active"`
}

type OfferingFilter struct {
	BusinessID *int64 `json:"business_id"`
	IsActive   *bool  `json:"is_active"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
