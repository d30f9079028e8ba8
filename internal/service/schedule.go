package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"zapis/internal/cache"
	"zapis/internal/domain"
	"zapis/internal/repository"
)

const dateLayout = "2006-01-02"

type ScheduleServiceImpl struct {
	repo         repository.ScheduleRepository
	offeringRepo repository.OfferingRepository
	cache        *cache.SlotCache
	logger       *zap.Logger
}

func NewScheduleService(repo repository.ScheduleRepository, offeringRepo repository.OfferingRepository, slotCache *cache.SlotCache, logger *zap.Logger) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:         repo,
		offeringRepo: offeringRepo,
		cache:        slotCache,
		logger:       logger,
	}
}

func (s *ScheduleServiceImpl) bumpCache(ctx context.Context, businessID int64) {
	if err := s.cache.BumpGeneration(ctx, businessID); err != nil {
		s.logger.Warn("не удалось сбросить кэш слотов", zap.Int64("businessID", businessID), zap.Error(err))
	}
}

// ownedOffering проверяет, что услуга принадлежит бизнесу вызывающего.
func (s *ScheduleServiceImpl) ownedOffering(ctx context.Context, businessID, offeringID int64) (*domain.Offering, error) {
	offering, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		s.logger.Error("услуга не найдена", zap.Int64("offeringID", offeringID), zap.Error(err))
		return nil, errors.New("услуга не найдена")
	}
	if offering.BusinessID != businessID {
		return nil, errors.New("услуга принадлежит другому бизнесу")
	}
	return offering, nil
}

func (s *ScheduleServiceImpl) SetBusinessHours(ctx context.Context, businessID int64, dto domain.SetBusinessHoursDTO) error {
	if len(dto.Days) == 0 {
		return domain.ErrEmptySchedule
	}

	windows := make([]domain.DayScheduleWindow, 0, len(dto.Days))
	seen := make(map[int]bool, len(dto.Days))
	for _, day := range dto.Days {
		if seen[day.DayOfWeek] {
			return errors.New("день недели указан дважды")
		}
		seen[day.DayOfWeek] = true

		window, err := day.ToWindow(businessID, dto.LocationID)
		if err != nil {
			return err
		}
		windows = append(windows, window)
	}

	if err := s.repo.ReplaceBusinessHours(ctx, businessID, dto.LocationID, windows); err != nil {
		s.logger.Error("ошибка сохранения рабочих часов", zap.Int64("businessID", businessID), zap.Error(err))
		return errors.New("ошибка при сохранении рабочих часов")
	}

	s.bumpCache(ctx, businessID)
	return nil
}

func (s *ScheduleServiceImpl) GetBusinessHours(ctx context.Context, businessID int64, locationID *int64) ([]domain.DayScheduleWindow, error) {
	windows, err := s.repo.GetBusinessHours(ctx, businessID, locationID)
	if err != nil {
		s.logger.Error("ошибка получения рабочих часов", zap.Int64("businessID", businessID), zap.Error(err))
		return nil, errors.New("ошибка при получении рабочих часов")
	}
	return windows, nil
}

func (s *ScheduleServiceImpl) SetOverride(ctx context.Context, businessID, offeringID int64, dto domain.SetOverrideDTO) error {
	if _, err := s.ownedOffering(ctx, businessID, offeringID); err != nil {
		return err
	}

	override := domain.ServiceScheduleOverride{
		OfferingID: offeringID,
		DayOfWeek:  dto.DayOfWeek,
		IsClosed:   dto.IsClosed,
	}

	if !dto.IsClosed {
		if len(dto.Ranges) == 0 {
			return domain.ErrEmptySchedule
		}
		for _, r := range dto.Ranges {
			parsed, err := domain.ParseTimeRange(r.StartTime + "-" + r.EndTime)
			if err != nil {
				return err
			}
			if parsed.Start >= parsed.End {
				return errors.New("начало диапазона должно быть раньше конца")
			}
			override.Ranges = append(override.Ranges, parsed)
		}
	}

	if err := s.repo.UpsertOverride(ctx, override); err != nil {
		s.logger.Error("ошибка сохранения переопределения расписания", zap.Int64("offeringID", offeringID), zap.Error(err))
		return errors.New("ошибка при сохранении переопределения расписания")
	}

	s.bumpCache(ctx, businessID)
	return nil
}

func (s *ScheduleServiceImpl) DeleteOverride(ctx context.Context, businessID, offeringID int64, dayOfWeek int) error {
	if _, err := s.ownedOffering(ctx, businessID, offeringID); err != nil {
		return err
	}

	if err := s.repo.DeleteOverride(ctx, offeringID, dayOfWeek); err != nil {
		s.logger.Error("ошибка удаления переопределения расписания", zap.Int64("offeringID", offeringID), zap.Error(err))
		return errors.New("ошибка при удалении переопределения расписания")
	}

	s.bumpCache(ctx, businessID)
	return nil
}

func (s *ScheduleServiceImpl) GetOverrides(ctx context.Context, offeringID int64) ([]domain.ServiceScheduleOverride, error) {
	overrides, err := s.repo.GetOverrides(ctx, offeringID)
	if err != nil {
		s.logger.Error("ошибка получения переопределений расписания", zap.Int64("offeringID", offeringID), zap.Error(err))
		return nil, errors.New("ошибка при получении переопределений расписания")
	}
	return overrides, nil
}

func (s *ScheduleServiceImpl) CreateOffDay(ctx context.Context, businessID int64, dto domain.CreateOffDayDTO) (int64, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	id, err := s.repo.CreateOffDay(ctx, domain.OffDay{
		BusinessID: businessID,
		LocationID: dto.LocationID,
		Date:       date,
		Reason:     dto.Reason,
	})
	if err != nil {
		s.logger.Error("ошибка создания выходного дня", zap.Int64("businessID", businessID), zap.Error(err))
		return 0, errors.New("ошибка при создании выходного дня")
	}

	s.bumpCache(ctx, businessID)
	return id, nil
}

func (s *ScheduleServiceImpl) DeleteOffDay(ctx context.Context, businessID, id int64) error {
	if err := s.repo.DeleteOffDay(ctx, businessID, id); err != nil {
		s.logger.Error("ошибка удаления выходного дня", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении выходного дня")
	}

	s.bumpCache(ctx, businessID)
	return nil
}

func (s *ScheduleServiceImpl) ListOffDays(ctx context.Context, businessID int64, locationID *int64, from, to string) ([]domain.OffDay, error) {
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

	offDays, err := s.repo.ListOffDays(ctx, businessID, locationID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения выходных дней", zap.Int64("businessID", businessID), zap.Error(err))
		return nil, errors.New("ошибка при получении выходных дней")
	}

	return offDays, nil
}

func (s *ScheduleServiceImpl) CreateSlotBlock(ctx context.Context, businessID int64, dto domain.CreateSlotBlockDTO) (int64, error) {
	if _, err := s.ownedOffering(ctx, businessID, dto.OfferingID); err != nil {
		return 0, err
	}

	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	startTime, err := domain.ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateSlotBlock(ctx, domain.SlotBlock{
		BusinessID: businessID,
		OfferingID: dto.OfferingID,
		Date:       date,
		StartTime:  startTime,
	})
	if err != nil {
		s.logger.Error("ошибка создания блокировки слота", zap.Int64("businessID", businessID), zap.Error(err))
		return 0, errors.New("ошибка при создании блокировки слота")
	}

	s.bumpCache(ctx, businessID)
	return id, nil
}

func (s *ScheduleServiceImpl) ListSlotBlocks(ctx context.Context, businessID int64, from, to string) ([]domain.SlotBlock, error) {
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

	blocks, err := s.repo.ListSlotBlocks(ctx, businessID, fromDate, toDate)
	if err != nil {
		s.logger.Error("ошибка получения блокировок слотов", zap.Int64("businessID", businessID), zap.Error(err))
		return nil, errors.New("ошибка при получении блокировок слотов")
	}

	return blocks, nil
}

func (s *ScheduleServiceImpl) DeleteSlotBlock(ctx context.Context, businessID, id int64) error {
	if err := s.repo.DeleteSlotBlock(ctx, businessID, id); err != nil {
		s.logger.Error("ошибка удаления блокировки слота", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении блокировки слота")
	}

	s.bumpCache(ctx, businessID)
	return nil
}
