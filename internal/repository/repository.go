package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"zapis/internal/domain"
)

type Repositories struct {
	User     UserRepository
	Auth     AuthRepository
	Business BusinessRepository
	Location LocationRepository
	Offering OfferingRepository
	Schedule ScheduleRepository
	Booking  BookingRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Auth:     NewAuthRepository(db),
		Business: NewBusinessRepository(db),
		Location: NewLocationRepository(db),
		Offering: NewOfferingRepository(db),
		Schedule: NewScheduleRepository(db),
		Booking:  NewBookingRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type BusinessRepository interface {
	Create(ctx context.Context, ownerID int64, business domain.CreateBusinessDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error)
	Update(ctx context.Context, id int64, business domain.UpdateBusinessDTO) error
	UpdateLogo(ctx context.Context, id int64, logoURL *string) error
	List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error)
	CountByFilter(ctx context.Context, filter domain.BusinessFilter) (int, error)
}

type LocationRepository interface {
	Create(ctx context.Context, businessID int64, location domain.CreateLocationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Update(ctx context.Context, id int64, location domain.UpdateLocationDTO) error
	Delete(ctx context.Context, id int64) error
	ListByBusinessID(ctx context.Context, businessID int64) ([]domain.Location, error)
}

type OfferingRepository interface {
	Create(ctx context.Context, businessID int64, offering domain.CreateOfferingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	Update(ctx context.Context, id int64, offering domain.UpdateOfferingDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error)
	CountByFilter(ctx context.Context, filter domain.OfferingFilter) (int, error)
}

type ScheduleRepository interface {
	ReplaceBusinessHours(ctx context.Context, businessID int64, locationID *int64, windows []domain.DayScheduleWindow) error
	GetBusinessHours(ctx context.Context, businessID int64, locationID *int64) ([]domain.DayScheduleWindow, error)
	GetWindowForDay(ctx context.Context, businessID int64, locationID *int64, dayOfWeek int) (*domain.DayScheduleWindow, error)

	UpsertOverride(ctx context.Context, override domain.ServiceScheduleOverride) error
	DeleteOverride(ctx context.Context, offeringID int64, dayOfWeek int) error
	GetOverrides(ctx context.Context, offeringID int64) ([]domain.ServiceScheduleOverride, error)
	GetOverrideForDay(ctx context.Context, offeringID int64, dayOfWeek int) (*domain.ServiceScheduleOverride, error)

	CreateOffDay(ctx context.Context, offDay domain.OffDay) (int64, error)
	DeleteOffDay(ctx context.Context, businessID, id int64) error
	ListOffDays(ctx context.Context, businessID int64, locationID *int64, from, to time.Time) ([]domain.OffDay, error)
	GetOffDaysForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.OffDay, error)

	CreateSlotBlock(ctx context.Context, block domain.SlotBlock) (int64, error)
	DeleteSlotBlock(ctx context.Context, businessID, id int64) error
	GetSlotBlocks(ctx context.Context, offeringID int64, date time.Time) ([]domain.SlotBlock, error)
	ListSlotBlocks(ctx context.Context, businessID int64, from, to time.Time) ([]domain.SlotBlock, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, id int64, update domain.BookingUpdate) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error)
	GetActiveForDate(ctx context.Context, businessID, offeringID int64, date time.Time) ([]domain.Booking, error)
}
