package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay — время внутри дня в минутах от полуночи.
// Строки "HH:MM" разбираются один раз на границе слоя данных.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("неверный формат времени %q, ожидается HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Display возвращает время в 12-часовом формате для виджета бронирования.
func (t TimeOfDay) Display() string {
	ref := time.Date(2000, 1, 1, int(t)/60, int(t)%60, 0, 0, time.UTC)
	return ref.Format("3:04 PM")
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange — полуинтервал [Start, End) рабочего времени.
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseTimeRange разбирает строку вида "09:00-13:00".
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("неверный формат диапазона %q, ожидается HH:MM-HH:MM", s)
	}
	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

func ParseTimeRanges(raw []string) ([]TimeRange, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ranges := make([]TimeRange, 0, len(raw))
	for _, s := range raw {
		r, err := ParseTimeRange(s)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func FormatTimeRanges(ranges []TimeRange) []string {
	if len(ranges) == 0 {
		return nil
	}
	raw := make([]string, 0, len(ranges))
	for _, r := range ranges {
		raw = append(raw, r.String())
	}
	return raw
}

// DayScheduleWindow — рабочие часы бизнеса на день недели,
// опционально привязанные к конкретной локации.
// Непустой Ranges (разрывной график) имеет приоритет над парой OpenTime/CloseTime.
type DayScheduleWindow struct {
	ID         int64       `json:"id"`
	BusinessID int64       `json:"business_id"`
	LocationID *int64      `json:"location_id,omitempty"`
	DayOfWeek  int         `json:"day_of_week"`
	IsClosed   bool        `json:"is_closed"`
	OpenTime   TimeOfDay   `json:"open_time"`
	CloseTime  TimeOfDay   `json:"close_time"`
	Ranges     []TimeRange `json:"ranges,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ServiceScheduleOverride — переопределение графика для конкретной услуги:
// при наличии полностью заменяет окно бизнеса на этот день недели.
type ServiceScheduleOverride struct {
	ID         int64       `json:"id"`
	OfferingID int64       `json:"offering_id"`
	DayOfWeek  int         `json:"day_of_week"`
	IsClosed   bool        `json:"is_closed"`
	Ranges     []TimeRange `json:"ranges,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OffDay — выходной на целый день; LocationID == nil действует на все локации.
type OffDay struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	LocationID *int64    `json:"location_id,omitempty"`
	Date       time.Time `json:"date"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SlotBlock — точечный запрет одного времени начала для услуги на дату.
type SlotBlock struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	OfferingID int64     `json:"offering_id"`
	Date       time.Time `json:"date"`
	StartTime  TimeOfDay `json:"start_time"`
	CreatedAt  time.Time `json:"created_at"`
}

type TimeRangeDTO struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type DayHoursDTO struct {
	DayOfWeek int            `json:"day_of_week" binding:"min=0,max=6"`
	IsClosed  bool           `json:"is_closed"`
	OpenTime  string         `json:"open_time"`
	CloseTime string         `json:"close_time"`
	Ranges    []TimeRangeDTO `json:"ranges,omitempty"`
}

type SetBusinessHoursDTO struct {
	LocationID *int64        `json:"location_id"`
	Days       []DayHoursDTO `json:"days" binding:"required,dive"`
}

type SetOverrideDTO struct {
	DayOfWeek int            `json:"day_of_week" binding:"min=0,max=6"`
	IsClosed  bool           `json:"is_closed"`
	Ranges    []TimeRangeDTO `json:"ranges,omitempty"`
}

type CreateOffDayDTO struct {
	Date       string `json:"date" binding:"required"`
	LocationID *int64 `json:"location_id"`
	Reason     string `json:"reason"`
}

type CreateSlotBlockDTO struct {
	OfferingID int64  `json:"offering_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
}

var ErrEmptySchedule = errors.New("расписание не задано")

// ToWindow собирает типизированное окно из DTO; разбор времени происходит здесь,
// дальше по слоям ходят только значения TimeOfDay.
func (d DayHoursDTO) ToWindow(businessID int64, locationID *int64) (DayScheduleWindow, error) {
	window := DayScheduleWindow{
		BusinessID: businessID,
		LocationID: locationID,
		DayOfWeek:  d.DayOfWeek,
		IsClosed:   d.IsClosed,
	}

	if d.IsClosed {
		return window, nil
	}

	for _, r := range d.Ranges {
		start, err := ParseTimeOfDay(r.StartTime)
		if err != nil {
			return DayScheduleWindow{}, err
		}
		end, err := ParseTimeOfDay(r.EndTime)
		if err != nil {
			return DayScheduleWindow{}, err
		}
		if start >= end {
			return DayScheduleWindow{}, fmt.Errorf("диапазон %s-%s: начало должно быть раньше конца", r.StartTime, r.EndTime)
		}
		window.Ranges = append(window.Ranges, TimeRange{Start: start, End: end})
	}

	if len(window.Ranges) > 0 {
		return window, nil
	}

	if d.OpenTime == "" || d.CloseTime == "" {
		return DayScheduleWindow{}, ErrEmptySchedule
	}

	open, err := ParseTimeOfDay(d.OpenTime)
	if err != nil {
		return DayScheduleWindow{}, err
	}
	closeTime, err := ParseTimeOfDay(d.CloseTime)
	if err != nil {
		return DayScheduleWindow{}, err
	}
	if open >= closeTime {
		return DayScheduleWindow{}, fmt.Errorf("время открытия %s должно быть раньше времени закрытия %s", d.OpenTime, d.CloseTime)
	}

	window.OpenTime = open
	window.CloseTime = closeTime
	return window, nil
}
