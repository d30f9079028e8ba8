package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"zapis/internal/domain"
	"zapis/internal/repository"
	"zapis/internal/storage"
)

type BusinessServiceImpl struct {
	repo        repository.BusinessRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewBusinessService(repo repository.BusinessRepository, fileStorage storage.FileStorage, logger *zap.Logger) *BusinessServiceImpl {
	return &BusinessServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *BusinessServiceImpl) Create(ctx context.Context, ownerID int64, dto domain.CreateBusinessDTO) (int64, error) {
	existing, err := s.repo.GetBySlug(ctx, dto.Slug)
	if err == nil && existing != nil {
		return 0, errors.New("бизнес с таким slug уже существует")
	}

	existing, err = s.repo.GetByOwnerID(ctx, ownerID)
	if err == nil && existing != nil {
		return 0, errors.New("у владельца уже есть зарегистрированный бизнес")
	}

	id, err := s.repo.Create(ctx, ownerID, dto)
	if err != nil {
		s.logger.Error("ошибка создания бизнеса", zap.Error(err))
		return 0, errors.New("ошибка при создании бизнеса")
	}

	return id, nil
}

func (s *BusinessServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("бизнес не найден", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("бизнес не найден")
	}
	return business, nil
}

func (s *BusinessServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	business, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("бизнес не найден", zap.String("slug", slug), zap.Error(err))
		return nil, errors.New("бизнес не найден")
	}
	return business, nil
}

func (s *BusinessServiceImpl) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error) {
	business, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("бизнес владельца не найден", zap.Int64("ownerID", ownerID), zap.Error(err))
		return nil, errors.New("бизнес не найден")
	}
	return business, nil
}

func (s *BusinessServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateBusinessDTO) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("бизнес для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("бизнес не найден")
	}

	err = s.repo.Update(ctx, id, dto)
	if err != nil {
		s.logger.Error("ошибка обновления бизнеса", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении бизнеса")
	}

	return nil
}

func (s *BusinessServiceImpl) List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, int, error) {
	businesses, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка бизнесов", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка бизнесов")
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества бизнесов", zap.Error(err))
		return businesses, 0, nil
	}

	return businesses, count, nil
}

func (s *BusinessServiceImpl) UploadLogo(ctx context.Context, businessID int64, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("файловое хранилище не настроено")
	}

	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		s.logger.Error("бизнес не найден", zap.Int64("id", businessID), zap.Error(err))
		return "", errors.New("бизнес не найден")
	}

	if business.LogoURL != nil && *business.LogoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, *business.LogoURL); err != nil {
			s.logger.Warn("не удалось удалить старый логотип", zap.Error(err))
		}
	}

	url, err := s.fileStorage.UploadFile(ctx, data, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки логотипа", zap.Int64("id", businessID), zap.Error(err))
		return "", errors.New("ошибка при загрузке логотипа")
	}

	if err := s.repo.UpdateLogo(ctx, businessID, &url); err != nil {
		s.logger.Error("ошибка сохранения ссылки на логотип", zap.Int64("id", businessID), zap.Error(err))
		return "", errors.New("ошибка при загрузке логотипа")
	}

	return url, nil
}

func (s *BusinessServiceImpl) DeleteLogo(ctx context.Context, businessID int64) error {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		s.logger.Error("бизнес не найден", zap.Int64("id", businessID), zap.Error(err))
		return errors.New("бизнес не найден")
	}

	if business.LogoURL == nil || *business.LogoURL == "" {
		return nil
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, *business.LogoURL); err != nil {
			s.logger.Warn("не удалось удалить файл логотипа", zap.Error(err))
		}
	}

	if err := s.repo.UpdateLogo(ctx, businessID, nil); err != nil {
		s.logger.Error("ошибка очистки ссылки на логотип", zap.Int64("id", businessID), zap.Error(err))
		return errors.New("ошибка при удалении логотипа")
	}

	return nil
}
