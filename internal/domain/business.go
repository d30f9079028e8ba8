package domain

import (
	"time"
)

type Business struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Timezone    string    `json:"timezone"`
	Phone       string    `json:"phone,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateBusinessDTO struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
	Phone       string `json:"phone"`
}

type UpdateBusinessDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Timezone    *string `json:"timezone"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"is_active"`
}

type BusinessFilter struct {
	OwnerID  *int64 `json:"owner_id"`
	IsActive *bool  `json:"is_active"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}
