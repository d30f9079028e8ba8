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
)

type AvailabilityServiceImpl struct {
	offeringRepo repository.OfferingRepository
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
	cache        *cache.SlotCache
	logger       *zap.Logger

	// подменяется в тестах
	now func() time.Time
}

func NewAvailabilityService(
	offeringRepo repository.OfferingRepository,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	slotCache *cache.SlotCache,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		offeringRepo: offeringRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		cache:        slotCache,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *AvailabilityServiceImpl) GetSlots(ctx context.Context, businessID, offeringID int64, locationID *int64, date string) (*availability.Result, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	offering, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		s.logger.Error("услуга не найдена", zap.Int64("offeringID", offeringID), zap.Error(err))
		return nil, errors.New("услуга не найдена")
	}
	if offering.BusinessID != businessID {
		return nil, errors.New("услуга принадлежит другому бизнесу")
	}
	if !offering.IsActive {
		return nil, errors.New("услуга недоступна для записи")
	}

	generation, err := s.cache.Generation(ctx, businessID)
	if err != nil {
		s.logger.Warn("кэш слотов недоступен", zap.Error(err))
	} else {
		cached, err := s.cache.GetSlots(ctx, businessID, generation, offeringID, locationID, date)
		if err != nil {
			s.logger.Warn("ошибка чтения кэша слотов", zap.Error(err))
		} else if cached != nil {
			metrics.IncSlotRequest("hit")
			return cached, nil
		}
	}

	result, err := s.computeForDate(ctx, offering, locationID, day)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutSlots(ctx, businessID, generation, offeringID, locationID, date, *result); err != nil {
		s.logger.Warn("ошибка записи кэша слотов", zap.Error(err))
	}
	metrics.IncSlotRequest("miss")

	return result, nil
}

// computeForDate загружает данные дня и запускает чистый расчёт.
func (s *AvailabilityServiceImpl) computeForDate(ctx context.Context, offering *domain.Offering, locationID *int64, day time.Time) (*availability.Result, error) {
	dayOfWeek := int(day.Weekday())

	window, err := s.scheduleRepo.GetWindowForDay(ctx, offering.BusinessID, locationID, dayOfWeek)
	if err != nil {
		s.logger.Error("ошибка получения рабочих часов", zap.Int64("businessID", offering.BusinessID), zap.Error(err))
		return nil, errors.New("ошибка при расчёте доступных слотов")
	}

	override, err := s.scheduleRepo.GetOverrideForDay(ctx, offering.ID, dayOfWeek)
	if err != nil {
		s.logger.Error("ошибка получения переопределения расписания", zap.Int64("offeringID", offering.ID), zap.Error(err))
		return nil, errors.New("ошибка при расчёте доступных слотов")
	}

	offDays, err := s.scheduleRepo.GetOffDaysForDate(ctx, offering.BusinessID, day)
	if err != nil {
		s.logger.Error("ошибка получения выходных дней", zap.Int64("businessID", offering.BusinessID), zap.Error(err))
		return nil, errors.New("ошибка при расчёте доступных слотов")
	}

	blocks, err := s.scheduleRepo.GetSlotBlocks(ctx, offering.ID, day)
	if err != nil {
		s.logger.Error("ошибка получения блокировок слотов", zap.Int64("offeringID", offering.ID), zap.Error(err))
		return nil, errors.New("ошибка при расчёте доступных слотов")
	}

	bookings, err := s.bookingRepo.GetActiveForDate(ctx, offering.BusinessID, offering.ID, day)
	if err != nil {
		s.logger.Error("ошибка получения броней", zap.Int64("offeringID", offering.ID), zap.Error(err))
		return nil, errors.New("ошибка при расчёте доступных слотов")
	}

	result, err := availability.Compute(availability.Inputs{
		Date:            day,
		Now:             s.now(),
		LocationID:      locationID,
		OffDays:         offDays,
		Window:          window,
		Override:        override,
		Blocks:          blocks,
		Bookings:        bookings,
		DurationMinutes: offering.DurationMinutes,
		BufferMinutes:   offering.BufferMinutes,
		SlotCapacity:    offering.SlotCapacity,
	})
	if err != nil {
		s.logger.Error("некорректная конфигурация расписания",
			zap.Int64("offeringID", offering.ID),
			zap.Error(err))
		return nil, errors.New("некорректная конфигурация расписания услуги")
	}

	return &result, nil
}

func (s *AvailabilityServiceImpl) GetOffDays(ctx context.Context, businessID int64, locationID *int64, from, to string) ([]domain.OffDay, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}
	if toDate.Before(fromDate) {
		return nil, errors.New("конец периода раньше начала")
	}

	offDays, err := s.scheduleRepo.ListOffDays(ctx, businessID, locationID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения выходных дней", zap.Int64("businessID", businessID), zap.Error(err))
		return nil, errors.New("ошибка при получении выходных дней")
	}

	return offDays, nil
}
