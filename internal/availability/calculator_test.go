package availability

import (
	"errors"
	"testing"
	"time"

	"zapis/internal/domain"
)

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func window(t *testing.T, open, closeAt string, ranges ...string) *domain.DayScheduleWindow {
	t.Helper()
	w := &domain.DayScheduleWindow{
		BusinessID: 1,
		DayOfWeek:  1,
	}
	if open != "" {
		w.OpenTime = mustTime(t, open)
		w.CloseTime = mustTime(t, closeAt)
	}
	for _, r := range ranges {
		parsed, err := domain.ParseTimeRange(r)
		if err != nil {
			t.Fatalf("ParseTimeRange(%q): %v", r, err)
		}
		w.Ranges = append(w.Ranges, parsed)
	}
	return w
}

func starts(res Result) []string {
	out := make([]string, 0, len(res.Slots))
	for _, s := range res.Slots {
		out = append(out, s.Start.String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	futureDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник
	today      = time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)
)

func TestComputeSingleRange(t *testing.T) {
	tests := []struct {
		name     string
		inputs   Inputs
		expected []string
		reason   Reason
	}{
		{
			name: "час без буфера, конец диапазона не переполняется",
			inputs: Inputs{
				Date:            futureDate,
				Now:             today,
				Window:          window(t, "09:00", "12:00"),
				DurationMinutes: 60,
			},
			expected: []string{"09:00", "10:00", "11:00"},
		},
		{
			name: "буфер 30 минут удлиняет шаг сетки",
			inputs: Inputs{
				Date:            futureDate,
				Now:             today,
				Window:          window(t, "09:00", "12:00"),
				DurationMinutes: 60,
				BufferMinutes:   30,
			},
			expected: []string{"09:00", "10:30"},
		},
		{
			name: "услуга ровно на весь диапазон",
			inputs: Inputs{
				Date:            futureDate,
				Now:             today,
				Window:          window(t, "09:00", "10:00"),
				DurationMinutes: 60,
			},
			expected: []string{"09:00"},
		},
		{
			name: "нулевая длительность — пустой результат без ошибки",
			inputs: Inputs{
				Date:   futureDate,
				Now:    today,
				Window: window(t, "09:00", "12:00"),
			},
			expected: nil,
		},
		{
			name: "окно отсутствует",
			inputs: Inputs{
				Date:            futureDate,
				Now:             today,
				DurationMinutes: 60,
			},
			expected: nil,
			reason:   ReasonNoSchedule,
		},
		{
			name: "день помечен закрытым",
			inputs: Inputs{
				Date: futureDate,
				Now:  today,
				Window: &domain.DayScheduleWindow{
					DayOfWeek: 1,
					IsClosed:  true,
				},
				DurationMinutes: 60,
			},
			expected: nil,
			reason:   ReasonClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.inputs)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if !equalStrings(starts(res), tt.expected) {
				t.Errorf("слоты = %v, ожидалось %v", starts(res), tt.expected)
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %q, ожидалось %q", res.Reason, tt.reason)
			}
		})
	}
}

func TestComputeSplitRanges(t *testing.T) {
	in := Inputs{
		Date:            futureDate,
		Now:             today,
		Window:          window(t, "", "", "09:00-12:00", "14:00-16:00"),
		DurationMinutes: 60,
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	expected := []string{"09:00", "10:00", "11:00", "14:00", "15:00"}
	if !equalStrings(starts(res), expected) {
		t.Errorf("слоты = %v, ожидалось %v", starts(res), expected)
	}
}

func TestComputeOffDay(t *testing.T) {
	locA := int64(10)
	locB := int64(20)

	tests := []struct {
		name       string
		locationID *int64
		offDay     domain.OffDay
		wantEmpty  bool
	}{
		{
			name:      "глобальный выходной действует без локации",
			offDay:    domain.OffDay{Date: futureDate},
			wantEmpty: true,
		},
		{
			name:       "глобальный выходной действует на любую локацию",
			locationID: &locA,
			offDay:     domain.OffDay{Date: futureDate},
			wantEmpty:  true,
		},
		{
			name:       "выходной своей локации",
			locationID: &locA,
			offDay:     domain.OffDay{Date: futureDate, LocationID: &locA},
			wantEmpty:  true,
		},
		{
			name:       "выходной чужой локации не действует",
			locationID: &locA,
			offDay:     domain.OffDay{Date: futureDate, LocationID: &locB},
			wantEmpty:  false,
		},
		{
			name:      "выходной на другую дату не действует",
			offDay:    domain.OffDay{Date: futureDate.AddDate(0, 0, 1)},
			wantEmpty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(Inputs{
				Date:            futureDate,
				Now:             today,
				LocationID:      tt.locationID,
				OffDays:         []domain.OffDay{tt.offDay},
				Window:          window(t, "09:00", "12:00"),
				DurationMinutes: 60,
			})
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if tt.wantEmpty {
				if len(res.Slots) != 0 || res.Reason != ReasonOffDay {
					t.Errorf("ожидался пустой результат с reason=off_day, получено %v (%q)", starts(res), res.Reason)
				}
			} else if len(res.Slots) == 0 {
				t.Error("слоты не должны быть пустыми")
			}
		})
	}
}

func TestComputeSlotBlock(t *testing.T) {
	in := Inputs{
		Date:            futureDate,
		Now:             today,
		Window:          window(t, "09:00", "12:00"),
		Blocks:          []domain.SlotBlock{{Date: futureDate, StartTime: mustTime(t, "10:00")}},
		DurationMinutes: 60,
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Блок выбивает ровно одного кандидата, сетка не переупаковывается.
	expected := []string{"09:00", "11:00"}
	if !equalStrings(starts(res), expected) {
		t.Errorf("слоты = %v, ожидалось %v", starts(res), expected)
	}
}

func TestComputeCapacity(t *testing.T) {
	booking := func(at string, status domain.BookingStatus) domain.Booking {
		return domain.Booking{StartTime: mustTime(t, at), Status: status}
	}

	tests := []struct {
		name     string
		capacity int
		bookings []domain.Booking
		want     []string
	}{
		{
			name:     "одно место из двух занято — слот доступен",
			capacity: 2,
			bookings: []domain.Booking{booking("14:00", domain.BookingStatusConfirmed)},
			want:     []string{"14:00", "15:00"},
		},
		{
			name:     "оба места заняты — слот исключён",
			capacity: 2,
			bookings: []domain.Booking{
				booking("14:00", domain.BookingStatusConfirmed),
				booking("14:00", domain.BookingStatusPending),
			},
			want: []string{"15:00"},
		},
		{
			name:     "отменённая бронь не занимает место",
			capacity: 1,
			bookings: []domain.Booking{booking("14:00", domain.BookingStatusCancelled)},
			want:     []string{"14:00", "15:00"},
		},
		{
			name:     "вместимость по умолчанию равна единице",
			capacity: 0,
			bookings: []domain.Booking{booking("14:00", domain.BookingStatusConfirmed)},
			want:     []string{"15:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(Inputs{
				Date:            futureDate,
				Now:             today,
				Window:          window(t, "14:00", "16:00"),
				Bookings:        tt.bookings,
				DurationMinutes: 60,
				SlotCapacity:    tt.capacity,
			})
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if !equalStrings(starts(res), tt.want) {
				t.Errorf("слоты = %v, ожидалось %v", starts(res), tt.want)
			}
		})
	}
}

func TestComputeOverrideReplacesWindow(t *testing.T) {
	override := &domain.ServiceScheduleOverride{
		DayOfWeek: 1,
		Ranges:    []domain.TimeRange{{Start: mustTime(t, "14:00"), End: mustTime(t, "16:00")}},
	}

	res, err := Compute(Inputs{
		Date:            futureDate,
		Now:             today,
		Window:          window(t, "09:00", "18:00"),
		Override:        override,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	expected := []string{"14:00", "15:00"}
	if !equalStrings(starts(res), expected) {
		t.Errorf("переопределение услуги должно полностью заменять окно: %v, ожидалось %v", starts(res), expected)
	}
}

func TestComputeOverrideClosed(t *testing.T) {
	res, err := Compute(Inputs{
		Date:            futureDate,
		Now:             today,
		Window:          window(t, "09:00", "18:00"),
		Override:        &domain.ServiceScheduleOverride{DayOfWeek: 1, IsClosed: true},
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.Slots) != 0 || res.Reason != ReasonClosed {
		t.Errorf("закрытое переопределение: слоты = %v, reason = %q", starts(res), res.Reason)
	}
}

func TestComputePastFilter(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)

	t.Run("сегодня прошедшие слоты исключаются", func(t *testing.T) {
		res, err := Compute(Inputs{
			Date:            now,
			Now:             now,
			Window:          window(t, "09:00", "13:00"),
			DurationMinutes: 60,
		})
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		expected := []string{"11:00", "12:00"}
		if !equalStrings(starts(res), expected) {
			t.Errorf("слоты = %v, ожидалось %v", starts(res), expected)
		}
	})

	t.Run("слот ровно в текущую минуту остаётся", func(t *testing.T) {
		exact := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
		res, err := Compute(Inputs{
			Date:            exact,
			Now:             exact,
			Window:          window(t, "09:00", "13:00"),
			DurationMinutes: 60,
		})
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		expected := []string{"11:00", "12:00"}
		if !equalStrings(starts(res), expected) {
			t.Errorf("слоты = %v, ожидалось %v", starts(res), expected)
		}
	})

	t.Run("для будущей даты фильтр не применяется", func(t *testing.T) {
		res, err := Compute(Inputs{
			Date:            futureDate,
			Now:             now,
			Window:          window(t, "09:00", "11:00"),
			DurationMinutes: 60,
		})
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		expected := []string{"09:00", "10:00"}
		if !equalStrings(starts(res), expected) {
			t.Errorf("слоты = %v, ожидалось %v", starts(res), expected)
		}
	})
}

func TestComputeConfigurationErrors(t *testing.T) {
	t.Run("отрицательный буфер обнуляет интервал", func(t *testing.T) {
		_, err := Compute(Inputs{
			Date:            futureDate,
			Now:             today,
			Window:          window(t, "09:00", "12:00"),
			DurationMinutes: 30,
			BufferMinutes:   -30,
		})
		if !errors.Is(err, ErrSlotInterval) {
			t.Errorf("ожидалась ErrSlotInterval, получено %v", err)
		}
	})

	t.Run("диапазон с началом позже конца", func(t *testing.T) {
		w := &domain.DayScheduleWindow{
			DayOfWeek: 1,
			Ranges:    []domain.TimeRange{{Start: mustTime(t, "12:00"), End: mustTime(t, "09:00")}},
		}
		_, err := Compute(Inputs{
			Date:            futureDate,
			Now:             today,
			Window:          w,
			DurationMinutes: 60,
		})
		if !errors.Is(err, ErrTimeRange) {
			t.Errorf("ожидалась ErrTimeRange, получено %v", err)
		}
	})
}

func TestComputeDisplayFormat(t *testing.T) {
	res, err := Compute(Inputs{
		Date:            futureDate,
		Now:             today,
		Window:          window(t, "13:00", "15:00"),
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Fatalf("ожидалось 2 слота, получено %d", len(res.Slots))
	}
	if res.Slots[0].Display != "1:00 PM" || res.Slots[1].Display != "2:00 PM" {
		t.Errorf("display = %q, %q", res.Slots[0].Display, res.Slots[1].Display)
	}
}
