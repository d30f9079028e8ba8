package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"zapis/internal/domain"
	"zapis/internal/repository"
)

type LocationServiceImpl struct {
	repo   repository.LocationRepository
	logger *zap.Logger
}

func NewLocationService(repo repository.LocationRepository, logger *zap.Logger) *LocationServiceImpl {
	return &LocationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *LocationServiceImpl) Create(ctx context.Context, businessID int64, dto domain.CreateLocationDTO) (int64, error) {
	id, err := s.repo.Create(ctx, businessID, dto)
	if err != nil {
		s.logger.Error("ошибка создания локации", zap.Int64("businessID", businessID), zap.Error(err))
		return 0, errors.New("ошибка при создании локации")
	}

	return id, nil
}

func (s *LocationServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("локация не найдена", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("локация не найдена")
	}
	return location, nil
}

func (s *LocationServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateLocationDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("локация для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("локация не найдена")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления локации", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении локации")
	}

	return nil
}

func (s *LocationServiceImpl) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("локация для удаления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("локация не найдена")
	}

	err = s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("ошибка удаления локации", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении локации")
	}

	return nil
}

func (s *LocationServiceImpl) ListByBusinessID(ctx context.Context, businessID int64) ([]domain.Location, error) {
	locations, err := s.repo.ListByBusinessID(ctx, businessID)
	if err != nil {
		s.logger.Error("ошибка получения списка локаций", zap.Int64("businessID", businessID), zap.Error(err))
		return nil, errors.New("ошибка при получении списка локаций")
	}

	return locations, nil
}
