package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type slotsResponse struct {
	Slots  []string `json:"slots"`
	Reason string   `json:"reason,omitempty"`
}

type offDaysResponse struct {
	Dates []string `json:"dates"`
}

// @Summary Свободные слоты
// @Description Возвращает доступные времена начала услуги на дату в часовом поясе бизнеса
// @Tags Доступность
// @Produce json
// @Param business_id query int true "ID бизнеса"
// @Param service_id query int true "ID услуги"
// @Param location_id query int false "ID локации"
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {object} slotsResponse "Список слотов"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /availability/slots [get]
func (h *Handler) getAvailableSlots(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Query("business_id"), 10, 64)
	if err != nil || businessID <= 0 {
		badRequestResponse(c, "некорректный business_id")
		return
	}

	offeringID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil || offeringID <= 0 {
		badRequestResponse(c, "некорректный service_id")
		return
	}

	locationID, ok := parseLocationIDQuery(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "требуется параметр date")
		return
	}

	result, err := h.services.Availability.GetSlots(c.Request.Context(), businessID, offeringID, locationID, date)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp := slotsResponse{
		Slots:  make([]string, 0, len(result.Slots)),
		Reason: string(result.Reason),
	}
	for _, slot := range result.Slots {
		resp.Slots = append(resp.Slots, slot.Display)
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Выходные дни бизнеса
// @Description Публичный список закрытых дат за период, используется виджетом записи
// @Tags Доступность
// @Produce json
// @Param business_id query int true "ID бизнеса"
// @Param location_id query int false "ID локации"
// @Param from query string true "Начало периода YYYY-MM-DD"
// @Param to query string true "Конец периода YYYY-MM-DD"
// @Success 200 {object} offDaysResponse "Закрытые даты"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /availability/off-days [get]
func (h *Handler) getPublicOffDays(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Query("business_id"), 10, 64)
	if err != nil || businessID <= 0 {
		badRequestResponse(c, "некорректный business_id")
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

	offDays, err := h.services.Availability.GetOffDays(c.Request.Context(), businessID, locationID, from, to)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp := offDaysResponse{Dates: make([]string, 0, len(offDays))}
	for _, d := range offDays {
		resp.Dates = append(resp.Dates, d.Date.Format("2006-01-02"))
	}

	c.JSON(http.StatusOK, resp)
}
