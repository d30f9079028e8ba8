package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"zapis/internal/availability"
	"zapis/internal/cache"
	"zapis/internal/domain"
	"zapis/internal/metrics"
	"zapis/internal/repository"
	"zapis/pkg/validator"
)

type BookingServiceImpl struct {
	repo         repository.BookingRepository
	offeringRepo repository.OfferingRepository
	availability *AvailabilityServiceImpl
	cache        *cache.SlotCache
	logger       *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	offeringRepo repository.OfferingRepository,
	availabilitySvc *AvailabilityServiceImpl,
	slotCache *cache.SlotCache,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:         repo,
		offeringRepo: offeringRepo,
		availability: availabilitySvc,
		cache:        slotCache,
		logger:       logger,
	}
}

func (s *BookingServiceImpl) bumpCache(ctx context.Context, businessID int64) {
	if err := s.cache.BumpGeneration(ctx, businessID); err != nil {
		s.logger.Warn("не удалось сбросить кэш слотов", zap.Int64("businessID", businessID), zap.Error(err))
	}
}

// assertSlotAvailable пересчитывает слоты мимо кэша перед записью.
func (s *BookingServiceImpl) assertSlotAvailable(ctx context.Context, offering *domain.Offering, locationID *int64, date time.Time, startTime domain.TimeOfDay) error {
	result, err := s.availability.computeForDate(ctx, offering, locationID, date)
	if err != nil {
		return err
	}

	if slotAvailable(result, startTime) {
		return nil
	}

	s.logger.Info("выбранное время недоступно",
		zap.Int64("offeringID", offering.ID),
		zap.String("date", date.Format(dateLayout)),
		zap.String("time", startTime.String()))
	return errors.New("выбранное время недоступно")
}

func slotAvailable(result *availability.Result, startTime domain.TimeOfDay) bool {
	for _, slot := range result.Slots {
		if slot.Start == startTime {
			return true
		}
	}
	return false
}

func (s *BookingServiceImpl) Create(ctx context.Context, dto domain.CreateBookingDTO) (int64, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	startTime, err := domain.ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return 0, err
	}

	if !validator.ValidatePhone(dto.CustomerPhone) {
		return 0, errors.New("некорректный номер телефона")
	}
	dto.CustomerPhone = validator.FormatPhone(dto.CustomerPhone)

	offering, err := s.offeringRepo.GetByID(ctx, dto.OfferingID)
	if err != nil {
		s.logger.Error("услуга не найдена при создании брони", zap.Int64("offeringID", dto.OfferingID), zap.Error(err))
		return 0, errors.New("услуга не найдена")
	}
	if offering.BusinessID != dto.BusinessID {
		return 0, errors.New("услуга принадлежит другому бизнесу")
	}
	if !offering.IsActive {
		return 0, errors.New("услуга недоступна для записи")
	}

	if err := s.assertSlotAvailable(ctx, offering, dto.LocationID, date, startTime); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, domain.Booking{
		BusinessID:    dto.BusinessID,
		OfferingID:    dto.OfferingID,
		LocationID:    dto.LocationID,
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		CustomerEmail: dto.CustomerEmail,
		Date:          date,
		StartTime:     startTime,
		Status:        domain.BookingStatusPending,
		Comment:       dto.Comment,
	})
	if err != nil {
		s.logger.Error("ошибка создания брони", zap.Error(err))
		return 0, errors.New("ошибка при создании брони")
	}

	s.bumpCache(ctx, dto.BusinessID)
	metrics.IncBookingCreated(string(domain.BookingStatusPending))

	return id, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения брони", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении брони")
	}
	if booking == nil {
		return nil, errors.New("бронь не найдена")
	}
	return booking, nil
}

func (s *BookingServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateBookingDTO) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	update := domain.BookingUpdate{
		Status:    dto.Status,
		PaymentID: dto.PaymentID,
		Comment:   dto.Comment,
	}

	if dto.Date != nil {
		date, err := time.Parse(dateLayout, *dto.Date)
		if err != nil {
			return errors.New("неверный формат даты, ожидается YYYY-MM-DD")
		}
		update.Date = &date
	}

	if dto.StartTime != nil {
		startTime, err := domain.ParseTimeOfDay(*dto.StartTime)
		if err != nil {
			return err
		}
		update.StartTime = &startTime
	}

	// перенос брони проверяется против актуальной сетки слотов
	if update.Date != nil || update.StartTime != nil {
		offering, err := s.offeringRepo.GetByID(ctx, booking.OfferingID)
		if err != nil {
			s.logger.Error("услуга не найдена при переносе брони", zap.Int64("offeringID", booking.OfferingID), zap.Error(err))
			return errors.New("услуга не найдена")
		}

		newDate := booking.Date
		if update.Date != nil {
			newDate = *update.Date
		}
		newStart := booking.StartTime
		if update.StartTime != nil {
			newStart = *update.StartTime
		}

		if err := s.assertSlotAvailable(ctx, offering, booking.LocationID, newDate, newStart); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		s.logger.Error("ошибка обновления брони", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении брони")
	}

	s.bumpCache(ctx, booking.BusinessID)
	if dto.Status != nil && *dto.Status == domain.BookingStatusCancelled {
		metrics.IncBookingCancelled()
	}

	return nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, id int64) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == domain.BookingStatusCancelled {
		return nil
	}

	status := domain.BookingStatusCancelled
	if err := s.repo.Update(ctx, id, domain.BookingUpdate{Status: &status}); err != nil {
		s.logger.Error("ошибка отмены брони", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене брони")
	}

	s.bumpCache(ctx, booking.BusinessID)
	metrics.IncBookingCancelled()

	return nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка броней", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка броней")
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества броней", zap.Error(err))
		return bookings, 0, nil
	}

	return bookings, count, nil
}
