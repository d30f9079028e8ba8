package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

const maxLogoSizeBytes = 5 << 20

// requireBusinessAccess проверяет, что вызывающий — администратор
// или владелец бизнеса businessID.
func (h *Handler) requireBusinessAccess(c *gin.Context, businessID int64) bool {
	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return false
	}
	if role == domain.UserRoleAdmin {
		return true
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return false
	}

	business, err := h.services.Business.GetByID(c.Request.Context(), businessID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return false
	}

	if business.OwnerID != userID {
		forbiddenResponse(c, "бизнес принадлежит другому владельцу")
		return false
	}

	return true
}

// resolveBusinessID определяет бизнес вызывающего: владелец работает со своим
// бизнесом, администратор указывает business_id в запросе.
func (h *Handler) resolveBusinessID(c *gin.Context) (int64, bool) {
	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	if role == domain.UserRoleAdmin {
		var query struct {
			BusinessID int64 `form:"business_id" binding:"required"`
		}
		if err := c.ShouldBindQuery(&query); err != nil {
			badRequestResponse(c, "администратор должен указать business_id")
			return 0, false
		}
		return query.BusinessID, true
	}

	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return 0, false
	}

	business, err := h.services.Business.GetByOwnerID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return 0, false
	}

	return business.ID, true
}

// @Summary Создание бизнеса
// @Description Владелец регистрирует свой бизнес; slug используется в публичной ссылке виджета
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateBusinessDTO true "Данные бизнеса"
// @Success 201 {object} successResponseBody "ID созданного бизнеса"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /businesses [post]
func (h *Handler) createBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateBusinessDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Business.Create(c.Request.Context(), userID, input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Мой бизнес
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.Business "Бизнес владельца"
// @Failure 404 {object} errorResponseBody "Бизнес не найден"
// @Router /businesses/me [get]
func (h *Handler) getMyBusiness(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	business, err := h.services.Business.GetByOwnerID(c.Request.Context(), userID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, business)
}

// @Summary Бизнес по ID
// @Tags Бизнесы
// @Produce json
// @Param id path int true "ID бизнеса"
// @Success 200 {object} domain.Business "Бизнес"
// @Failure 404 {object} errorResponseBody "Бизнес не найден"
// @Router /businesses/{id} [get]
func (h *Handler) getBusinessByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	business, err := h.services.Business.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, business)
}

// @Summary Бизнес по slug
// @Description Публичная точка входа виджета бронирования
// @Tags Бизнесы
// @Produce json
// @Param slug path string true "Slug бизнеса"
// @Success 200 {object} domain.Business "Бизнес"
// @Failure 404 {object} errorResponseBody "Бизнес не найден"
// @Router /businesses/slug/{slug} [get]
func (h *Handler) getBusinessBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		badRequestResponse(c, "пустой slug")
		return
	}

	business, err := h.services.Business.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, business)
}

// @Summary Обновление бизнеса
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID бизнеса"
// @Param input body domain.UpdateBusinessDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Бизнес обновлён"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /businesses/{id} [put]
func (h *Handler) updateBusiness(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireBusinessAccess(c, id) {
		return
	}

	var input domain.UpdateBusinessDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Business.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "бизнес обновлён")
}

// @Summary Список бизнесов
// @Description Доступно только администратору
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список бизнесов"
// @Router /businesses [get]
func (h *Handler) getBusinesses(c *gin.Context) {
	limit, offset := parseLimitOffset(c)

	filter := domain.BusinessFilter{
		Limit:  limit,
		Offset: offset,
	}

	businesses, total, err := h.services.Business.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, businesses, total, page, limit)
}

// @Summary Загрузка логотипа
// @Description Принимает multipart-форму с полем file; старый логотип удаляется
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID бизнеса"
// @Param file formData file true "Изображение логотипа"
// @Success 200 {object} successResponseBody "URL логотипа"
// @Failure 400 {object} errorResponseBody "Некорректный файл"
// @Router /businesses/{id}/logo [post]
func (h *Handler) uploadBusinessLogo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireBusinessAccess(c, id) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return
	}

	if fileHeader.Size > maxLogoSizeBytes {
		badRequestResponse(c, "файл слишком большой")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		badRequestResponse(c, "не удалось прочитать файл")
		return
	}

	url, err := h.services.Business.UploadLogo(c.Request.Context(), id, data, fileHeader.Filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"logo_url": url,
	})
}

// @Summary Удаление логотипа
// @Tags Бизнесы
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID бизнеса"
// @Success 204 {object} nil "Логотип удалён"
// @Router /businesses/{id}/logo [delete]
func (h *Handler) deleteBusinessLogo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireBusinessAccess(c, id) {
		return
	}

	if err := h.services.Business.DeleteLogo(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
