package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

// @Summary Создание брони
// @Description Публичная запись клиента на услугу, слот проверяется на доступность
// @Tags Брони
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Данные брони"
// @Success 201 {object} successResponseBody "ID брони"
// @Failure 400 {object} errorResponseBody "Слот недоступен или ошибка валидации"
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	var input domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Booking.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// requireBookingAccess проверяет, что бронь принадлежит бизнесу текущего владельца.
func (h *Handler) requireBookingAccess(c *gin.Context, id int64) (*domain.Booking, bool) {
	booking, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return nil, false
	}

	if !h.requireBusinessAccess(c, booking.BusinessID) {
		return nil, false
	}

	return booking, true
}

// @Summary Список броней
// @Description Брони бизнеса текущего владельца с фильтрами по статусу, услуге и периоду
// @Tags Брони
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "Статус брони"
// @Param offering_id query int false "ID услуги"
// @Param location_id query int false "ID локации"
// @Param from query string false "Начало периода YYYY-MM-DD"
// @Param to query string false "Конец периода YYYY-MM-DD"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список броней"
// @Router /bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	businessID, ok := h.resolveBusinessID(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)

	filter := domain.BookingFilter{
		BusinessID: &businessID,
		Limit:      limit,
		Offset:     offset,
	}

	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.Status = &status
	}

	if raw := c.Query("offering_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequestResponse(c, "некорректный offering_id")
			return
		}
		filter.OfferingID = &id
	}

	locationID, ok := parseLocationIDQuery(c)
	if !ok {
		return
	}
	filter.LocationID = locationID

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequestResponse(c, "некорректный параметр from")
			return
		}
		filter.StartDate = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequestResponse(c, "некорректный параметр to")
			return
		}
		filter.EndDate = &to
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, bookings, total, page, limit)
}

// @Summary Бронь по ID
// @Tags Брони
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID брони"
// @Success 200 {object} domain.Booking "Данные брони"
// @Failure 404 {object} errorResponseBody "Бронь не найдена"
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, ok := h.requireBookingAccess(c, id)
	if !ok {
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Обновление брони
// @Description Смена статуса, перенос на другое время или добавление комментария
// @Tags Брони
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID брони"
// @Param input body domain.UpdateBookingDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Бронь обновлена"
// @Failure 400 {object} errorResponseBody "Новый слот недоступен или ошибка валидации"
// @Router /bookings/{id} [put]
func (h *Handler) updateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := h.requireBookingAccess(c, id); !ok {
		return
	}

	var input domain.UpdateBookingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Booking.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "бронь обновлена")
}

// @Summary Отмена брони
// @Description Переводит бронь в статус cancelled и освобождает слот
// @Tags Брони
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID брони"
// @Success 204 {object} nil "Бронь отменена"
// @Failure 404 {object} errorResponseBody "Бронь не найдена"
// @Router /bookings/{id} [delete]
func (h *Handler) cancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := h.requireBookingAccess(c, id); !ok {
		return
	}

	if err := h.services.Booking.Cancel(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	noContentResponse(c)
}
