package service

import (
	"context"

	"go.uber.org/zap"

	"zapis/config"
	"zapis/internal/availability"
	"zapis/internal/cache"
	"zapis/internal/domain"
	"zapis/internal/repository"
	"zapis/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       *cache.SlotCache
}

type Services struct {
	User         UserService
	Auth         AuthService
	Business     BusinessService
	Location     LocationService
	Offering     OfferingService
	Schedule     ScheduleService
	Booking      BookingService
	Availability AvailabilityService
}

func NewServices(deps Deps) *Services {
	availabilitySvc := NewAvailabilityService(deps.Repos.Offering, deps.Repos.Schedule, deps.Repos.Booking, deps.Cache, deps.Logger)

	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Business:     NewBusinessService(deps.Repos.Business, deps.FileStorage, deps.Logger),
		Location:     NewLocationService(deps.Repos.Location, deps.Logger),
		Offering:     NewOfferingService(deps.Repos.Offering, deps.Cache, deps.Logger),
		Schedule:     NewScheduleService(deps.Repos.Schedule, deps.Repos.Offering, deps.Cache, deps.Logger),
		Booking:      NewBookingService(deps.Repos.Booking, deps.Repos.Offering, availabilitySvc, deps.Cache, deps.Logger),
		Availability: availabilitySvc,
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type BusinessService interface {
	Create(ctx context.Context, ownerID int64, dto domain.CreateBusinessDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error)
	Update(ctx context.Context, id int64, dto domain.UpdateBusinessDTO) error
	List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, int, error)

	UploadLogo(ctx context.Context, businessID int64, data []byte, filename string) (string, error)
	DeleteLogo(ctx context.Context, businessID int64) error
}

type LocationService interface {
	Create(ctx context.Context, businessID int64, dto domain.CreateLocationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Update(ctx context.Context, id int64, dto domain.UpdateLocationDTO) error
	Delete(ctx context.Context, id int64) error
	ListByBusinessID(ctx context.Context, businessID int64) ([]domain.Location, error)
}

type OfferingService interface {
	Create(ctx context.Context, businessID int64, dto domain.CreateOfferingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Offering, error)
	Update(ctx context.Context, id int64, dto domain.UpdateOfferingDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, int, error)
}

type ScheduleService interface {
	SetBusinessHours(ctx context.Context, businessID int64, dto domain.SetBusinessHoursDTO) error
	GetBusinessHours(ctx context.Context, businessID int64, locationID *int64) ([]domain.DayScheduleWindow, error)

	SetOverride(ctx context.Context, businessID, offeringID int64, dto domain.SetOverrideDTO) error
	DeleteOverride(ctx context.Context, businessID, offeringID int64, dayOfWeek int) error
	GetOverrides(ctx context.Context, offeringID int64) ([]domain.ServiceScheduleOverride, error)

	CreateOffDay(ctx context.Context, businessID int64, dto domain.CreateOffDayDTO) (int64, error)
	DeleteOffDay(ctx context.Context, businessID, id int64) error
	ListOffDays(ctx context.Context, businessID int64, locationID *int64, from, to string) ([]domain.OffDay, error)

	CreateSlotBlock(ctx context.Context, businessID int64, dto domain.CreateSlotBlockDTO) (int64, error)
	ListSlotBlocks(ctx context.Context, businessID int64, from, to string) ([]domain.SlotBlock, error)
	DeleteSlotBlock(ctx context.Context, businessID, id int64) error
}

type BookingService interface {
	Create(ctx context.Context, dto domain.CreateBookingDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, id int64, dto domain.UpdateBookingDTO) error
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
}

type AvailabilityService interface {
	GetSlots(ctx context.Context, businessID, offeringID int64, locationID *int64, date string) (*availability.Result, error)
	GetOffDays(ctx context.Context, businessID int64, locationID *int64, from, to string) ([]domain.OffDay, error)
}
