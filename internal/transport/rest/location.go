package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

// @Summary Локации бизнеса
// @Description Публичный список точек обслуживания
// @Tags Локации
// @Produce json
// @Param id path int true "ID бизнеса"
// @Success 200 {array} domain.Location "Список локаций"
// @Router /businesses/{id}/locations [get]
func (h *Handler) getBusinessLocations(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	locations, err := h.services.Location.ListByBusinessID(c.Request.Context(), businessID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, locations)
}

// @Summary Создание локации
// @Tags Локации
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID бизнеса"
// @Param input body domain.CreateLocationDTO true "Данные локации"
// @Success 201 {object} successResponseBody "ID созданной локации"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /businesses/{id}/locations [post]
func (h *Handler) createLocation(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !h.requireBusinessAccess(c, businessID) {
		return
	}

	var input domain.CreateLocationDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Location.Create(c.Request.Context(), businessID, input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление локации
// @Tags Локации
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID локации"
// @Param input body domain.UpdateLocationDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Локация обновлена"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /locations/{id} [put]
func (h *Handler) updateLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.services.Location.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, location.BusinessID) {
		return
	}

	var input domain.UpdateLocationDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Location.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "локация обновлена")
}

// @Summary Удаление локации
// @Tags Локации
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID локации"
// @Success 204 {object} nil "Локация удалена"
// @Failure 403 {object} errorResponseBody "Доступ запрещён"
// @Router /locations/{id} [delete]
func (h *Handler) deleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.services.Location.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, location.BusinessID) {
		return
	}

	if err := h.services.Location.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
