package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

// @Summary Услуги бизнеса
// @Description Публичный список активных услуг для виджета бронирования
// @Tags Услуги
// @Produce json
// @Param id path int true "ID бизнеса"
// @Success 200 {object} paginatedResponse "Список услуг"
// @Router /businesses/{id}/offerings [get]
func (h *Handler) getBusinessOfferings(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	active := true

	filter := domain.OfferingFilter{
		BusinessID: &businessID,
		IsActive:   &active,
		Limit:      limit,
		Offset:     offset,
	}

	offerings, total, err := h.services.Offering.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, offerings, total, page, limit)
}

// @Summary Услуга по ID
// @Tags Услуги
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} domain.Offering "Услуга"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Router /offerings/{id} [get]
func (h *Handler) getOfferingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, offering)
}

// @Summary Создание услуги
// @Tags Услуги
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID бизнеса"
// @Param input body domain.CreateOfferingDTO true "Данные услуги"
// @Success 201 {object} successResponseBody "ID созданной услуги"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /businesses/{id}/offerings [post]
func (h *Handler) createOffering(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireBusinessAccess(c, businessID) {
		return
	}

	var input domain.CreateOfferingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Offering.Create(c.Request.Context(), businessID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление услуги
// @Description Изменение длительности, буфера или вместимости сбрасывает кэш слотов
// @Tags Услуги
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateOfferingDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Услуга обновлена"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /offerings/{id} [put]
func (h *Handler) updateOffering(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, offering.BusinessID) {
		return
	}

	var input domain.UpdateOfferingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Offering.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "услуга обновлена")
}

// @Summary Удаление услуги
// @Tags Услуги
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID услуги"
// @Success 204 {object} nil "Услуга удалена"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /offerings/{id} [delete]
func (h *Handler) deleteOffering(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, offering.BusinessID) {
		return
	}

	if err := h.services.Offering.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
