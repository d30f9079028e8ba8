package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"zapis/internal/cache"
	"zapis/internal/domain"
	"zapis/internal/repository"
)

type OfferingServiceImpl struct {
	repo   repository.OfferingRepository
	cache  *cache.SlotCache
	logger *zap.Logger
}

func NewOfferingService(repo repository.OfferingRepository, slotCache *cache.SlotCache, logger *zap.Logger) *OfferingServiceImpl {
	return &OfferingServiceImpl{
		repo:   repo,
		cache:  slotCache,
		logger: logger,
	}
}

func (s *OfferingServiceImpl) Create(ctx context.Context, businessID int64, dto domain.CreateOfferingDTO) (int64, error) {
	if dto.DurationMinutes <= 0 {
		return 0, errors.New("длительность услуги должна быть положительной")
	}
	if dto.BufferMinutes < 0 {
		return 0, errors.New("буфер услуги не может быть отрицательным")
	}

	id, err := s.repo.Create(ctx, businessID, dto)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.Int64("businessID", businessID), zap.Error(err))
		return 0, errors.New("ошибка при создании услуги")
	}

	return id, nil
}

func (s *OfferingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("услуга не найдена", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("услуга не найдена")
	}
	return offering, nil
}

func (s *OfferingServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateOfferingDTO) error {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("услуга для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("услуга не найдена")
	}

	if dto.DurationMinutes != nil && *dto.DurationMinutes <= 0 {
		return errors.New("длительность услуги должна быть положительной")
	}
	if dto.BufferMinutes != nil && *dto.BufferMinutes < 0 {
		return errors.New("буфер услуги не может быть отрицательным")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении услуги")
	}

	// длительность, буфер и вместимость меняют сетку слотов
	if err := s.cache.BumpGeneration(ctx, offering.BusinessID); err != nil {
		s.logger.Warn("не удалось сбросить кэш слотов", zap.Error(err))
	}

	return nil
}

func (s *OfferingServiceImpl) Delete(ctx context.Context, id int64) error {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("услуга для удаления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("услуга не найдена")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления услуги", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении услуги")
	}

	if err := s.cache.BumpGeneration(ctx, offering.BusinessID); err != nil {
		s.logger.Warn("не удалось сбросить кэш слотов", zap.Error(err))
	}

	return nil
}

func (s *OfferingServiceImpl) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, int, error) {
	offerings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка услуг")
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества услуг", zap.Error(err))
		return offerings, 0, nil
	}

	return offerings, count, nil
}
