package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

func parseLocationIDQuery(c *gin.Context) (*int64, bool) {
	raw := c.Query("location_id")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "некорректный location_id")
		return nil, false
	}
	return &id, true
}

// @Summary Установка рабочих часов
// @Description Полностью заменяет недельное расписание бизнеса, опционально для конкретной локации
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.SetBusinessHoursDTO true "Окна по дням недели"
// @Success 200 {object} messageResponseType "Расписание сохранено"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule/hours [put]
func (h *Handler) setBusinessHours(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	var input domain.SetBusinessHoursDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.SetBusinessHours(c.Request.Context(), businessID, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "расписание сохранено")
}

// @Summary Рабочие часы
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param location_id query int false "ID локации"
// @Success 200 {array} domain.DayScheduleWindow "Окна по дням недели"
// @Router /schedule/hours [get]
func (h *Handler) getBusinessHours(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	locationID, ok := parseLocationIDQuery(c)
	if !ok {
		return
	}

	windows, err := h.services.Schedule.GetBusinessHours(c.Request.Context(), businessID, locationID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, windows)
}

// @Summary Переопределения расписания услуги
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {array} domain.ServiceScheduleOverride "Переопределения по дням недели"
// @Router /offerings/{id}/overrides [get]
func (h *Handler) getOverrides(c *gin.Context) {
	offeringID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), offeringID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, offering.BusinessID) {
		return
	}

	overrides, err := h.services.Schedule.GetOverrides(c.Request.Context(), offeringID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, overrides)
}

// @Summary Установка переопределения
// @Description Переопределение полностью заменяет часы бизнеса для услуги на этот день недели
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.SetOverrideDTO true "Диапазоны или флаг закрытия"
// @Success 200 {object} messageResponseType "Переопределение сохранено"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /offerings/{id}/overrides [put]
func (h *Handler) setOverride(c *gin.Context) {
	offeringID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), offeringID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, offering.BusinessID) {
		return
	}

	var input domain.SetOverrideDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Schedule.SetOverride(c.Request.Context(), offering.BusinessID, offeringID, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "переопределение сохранено")
}

// @Summary Удаление переопределения
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID услуги"
// @Param day path int true "День недели 0-6"
// @Success 204 {object} nil "Переопределение удалено"
// @Router /offerings/{id}/overrides/{day} [delete]
func (h *Handler) deleteOverride(c *gin.Context) {
	offeringID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day > 6 {
		badRequestResponse(c, "некорректный день недели")
		return
	}

	offering, err := h.services.Offering.GetByID(c.Request.Context(), offeringID)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !h.requireBusinessAccess(c, offering.BusinessID) {
		return
	}

	if err := h.services.Schedule.DeleteOverride(c.Request.Context(), offering.BusinessID, offeringID, day); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Создание выходного дня
// @Description Закрывает дату целиком; без location_id действует на все локации
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateOffDayDTO true "Дата и причина"
// @Success 201 {object} successResponseBody "ID выходного дня"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule/off-days [post]
func (h *Handler) createOffDay(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	var input domain.CreateOffDayDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Schedule.CreateOffDay(c.Request.Context(), businessID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Выходные дни
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param from query string true "Начало периода YYYY-MM-DD"
// @Param to query string true "Конец периода YYYY-MM-DD"
// @Param location_id query int false "ID локации"
// @Success 200 {array} domain.OffDay "Выходные дни"
// @Router /schedule/off-days [get]
func (h *Handler) listOffDays(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	locationID, ok := parseLocationIDQuery(c)
	if !ok {
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		badRequestResponse(c, "требуются параметры from и to")
		return
	}

	offDays, err := h.services.Schedule.ListOffDays(c.Request.Context(), businessID, locationID, from, to)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, offDays)
}

// @Summary Удаление выходного дня
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID выходного дня"
// @Success 204 {object} nil "Выходной день удалён"
// @Router /schedule/off-days/{id} [delete]
func (h *Handler) deleteOffDay(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Schedule.DeleteOffDay(c.Request.Context(), businessID, id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Блокировка слота
// @Description Точечно запрещает одно время начала услуги на дату
// @Tags Расписание
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateSlotBlockDTO true "Услуга, дата и время"
// @Success 201 {object} successResponseBody "ID блокировки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /schedule/blocks [post]
func (h *Handler) createSlotBlock(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	var input domain.CreateSlotBlockDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Schedule.CreateSlotBlock(c.Request.Context(), businessID, input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Блокировки слотов
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param from query string true "Начало периода YYYY-MM-DD"
// @Param to query string true "Конец периода YYYY-MM-DD"
// @Success 200 {array} domain.SlotBlock "Блокировки"
// @Router /schedule/blocks [get]
func (h *Handler) listSlotBlocks(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		badRequestResponse(c, "требуются параметры from и to")
		return
	}

	blocks, err := h.services.Schedule.ListSlotBlocks(c.Request.Context(), businessID, from, to)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, blocks)
}

// @Summary Снятие блокировки слота
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID блокировки"
// @Success 204 {object} nil "Блокировка снята"
// @Router /schedule/blocks/{id} [delete]
func (h *Handler) deleteSlotBlock(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Schedule.DeleteSlotBlock(c.Request.Context(), businessID, id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
