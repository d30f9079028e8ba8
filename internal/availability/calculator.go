package availability

import (
	"errors"
	"fmt"
	"time"

	"zapis/internal/domain"
)

var (
	// ErrSlotInterval — ошибка конфигурации услуги: шаг сетки слотов
	// (длительность + буфер) должен быть строго положительным.
	ErrSlotInterval = errors.New("неположительный интервал слота")
	// ErrTimeRange — ошибка конфигурации расписания: начало диапазона не раньше конца.
	ErrTimeRange = errors.New("некорректный диапазон рабочего времени")
)

type Reason string

const (
	ReasonOffDay     Reason = "off_day"
	ReasonClosed     Reason = "closed"
	ReasonNoSchedule Reason = "no_schedule"
)

// Inputs — заранее загруженные данные для расчёта слотов на одну дату.
// Калькулятор чистый: ничего не читает и не пишет сам.
type Inputs struct {
	Date       time.Time
	Now        time.Time
	LocationID *int64

	OffDays  []domain.OffDay
	Window   *domain.DayScheduleWindow
	Override *domain.ServiceScheduleOverride
	Blocks   []domain.SlotBlock
	Bookings []domain.Booking

	DurationMinutes int
	BufferMinutes   int
	SlotCapacity    int
}

type Slot struct {
	Start   domain.TimeOfDay `json:"start"`
	Display string           `json:"display"`
}

type Result struct {
	Slots  []Slot `json:"slots"`
	Reason Reason `json:"reason,omitempty"`
}

// Compute возвращает доступные времена начала для даты.
// Пустой результат без ошибки — это нормальный исход (выходной, закрытый день,
// все кандидаты отфильтрованы), а не сбой.
//
// Калькулятор только читает: гонку двух одновременных броней на один слот
// он не разрешает, это забота пути записи (повторная проверка перед вставкой).
func Compute(in Inputs) (Result, error) {
	if offDayApplies(in.Date, in.LocationID, in.OffDays) {
		return Result{Reason: ReasonOffDay}, nil
	}

	if in.DurationMinutes <= 0 {
		return Result{}, nil
	}

	ranges, reason := resolveRanges(in.Window, in.Override)
	if reason != "" {
		return Result{Reason: reason}, nil
	}

	interval := in.DurationMinutes + in.BufferMinutes
	if interval <= 0 {
		return Result{}, fmt.Errorf("%w: длительность %d + буфер %d", ErrSlotInterval, in.DurationMinutes, in.BufferMinutes)
	}

	capacity := in.SlotCapacity
	if capacity <= 0 {
		capacity = 1
	}

	blocked := make(map[domain.TimeOfDay]bool, len(in.Blocks))
	for _, b := range in.Blocks {
		blocked[b.StartTime] = true
	}

	occupied := make(map[domain.TimeOfDay]int, len(in.Bookings))
	for _, b := range in.Bookings {
		if b.Status.CountsAgainstCapacity() {
			occupied[b.StartTime]++
		}
	}

	sameDay := sameDate(in.Date, in.Now)
	nowTime := domain.TimeOfDayFromTime(in.Now)

	var slots []Slot
	for _, r := range ranges {
		if r.Start >= r.End {
			return Result{}, fmt.Errorf("%w: %s", ErrTimeRange, r)
		}

		// Кандидат предлагается, только если услуга целиком помещается в диапазон.
		for cur := r.Start; int(cur)+in.DurationMinutes <= int(r.End); cur = cur.Add(interval) {
			if blocked[cur] {
				continue
			}
			if sameDay && cur < nowTime {
				continue
			}
			if occupied[cur] >= capacity {
				continue
			}
			slots = append(slots, Slot{Start: cur, Display: cur.Display()})
		}
	}

	return Result{Slots: slots}, nil
}

// resolveRanges выбирает действующие диапазоны дня по приоритету:
// переопределение услуги -> разрывной график бизнеса -> пара открытие/закрытие.
// Отсутствующее окно и закрытый день дают пустой результат, не ошибку.
func resolveRanges(window *domain.DayScheduleWindow, override *domain.ServiceScheduleOverride) ([]domain.TimeRange, Reason) {
	if override != nil {
		if override.IsClosed || len(override.Ranges) == 0 {
			return nil, ReasonClosed
		}
		return override.Ranges, ""
	}

	if window == nil {
		return nil, ReasonNoSchedule
	}
	if window.IsClosed {
		return nil, ReasonClosed
	}
	if len(window.Ranges) > 0 {
		return window.Ranges, ""
	}
	return []domain.TimeRange{{Start: window.OpenTime, End: window.CloseTime}}, ""
}

func offDayApplies(date time.Time, locationID *int64, offDays []domain.OffDay) bool {
	for _, od := range offDays {
		if !sameDate(od.Date, date) {
			continue
		}
		if od.LocationID == nil {
			return true
		}
		if locationID != nil && *od.LocationID == *locationID {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
