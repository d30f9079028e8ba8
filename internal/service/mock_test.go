package service

import (
	"context"
	"errors"
	"time"

	"zapis/internal/domain"
)

// Фейковые репозитории для тестов сервисного слоя.

type fakeOfferingRepo struct {
	offerings map[int64]*domain.Offering
}

func (f *fakeOfferingRepo) Create(ctx context.Context, businessID int64, dto domain.CreateOfferingDTO) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeOfferingRepo) GetByID(ctx context.Context, id int64) (*domain.Offering, error) {
	offering, ok := f.offerings[id]
	if !ok {
		return nil, errors.New("услуга не найдена")
	}
	return offering, nil
}

func (f *fakeOfferingRepo) Update(ctx context.Context, id int64, dto domain.UpdateOfferingDTO) error {
	return nil
}

func (f *fakeOfferingRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeOfferingRepo) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	return nil, nil
}

func (f *fakeOfferingRepo) CountByFilter(ctx context.Context, filter domain.OfferingFilter) (int, error) {
	return 0, nil
}

type fakeScheduleRepo struct {
	window   *domain.DayScheduleWindow
	override *domain.ServiceScheduleOverride
	offDays  []domain.OffDay
	blocks   []domain.SlotBlock
}

func (f *fakeScheduleRepo) ReplaceBusinessHours(ctx context.Context, businessID int64, locationID *int64, windows []domain.DayScheduleWindow) error {
	return nil
}

func (f *fakeScheduleRepo) GetBusinessHours(ctx context.Context, businessID int64, locationID *int64) ([]domain.DayScheduleWindow, error) {
	if f.window == nil {
		return nil, nil
	}
	return []domain.DayScheduleWindow{*f.window}, nil
}

func (f *fakeScheduleRepo) GetWindowForDay(ctx context.Context, businessID int64, locationID *int64, dayOfWeek int) (*domain.DayScheduleWindow, error) {
	if f.window == nil || f.window.DayOfWeek != dayOfWeek {
		return nil, nil
	}
	return f.window, nil
}

func (f *fakeScheduleRepo) UpsertOverride(ctx context.Context, override domain.ServiceScheduleOverride) error {
	f.override = &override
	return nil
}

func (f *fakeScheduleRepo) DeleteOverride(ctx context.Context, offeringID int64, dayOfWeek int) error {
	f.override = nil
	return nil
}

func (f *fakeScheduleRepo) GetOverrides(ctx context.Context, offeringID int64) ([]domain.ServiceScheduleOverride, error) {
	if f.override == nil {
		return nil, nil
	}
	return []domain.ServiceScheduleOverride{*f.override}, nil
}

func (f *fakeScheduleRepo) GetOverrideForDay(ctx context.Context, offeringID int64, dayOfWeek int) (*domain.ServiceScheduleOverride, error) {
	if f.override == nil || f.override.DayOfWeek != dayOfWeek {
		return nil, nil
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) CreateOffDay(ctx context.Context, offDay domain.OffDay) (int64, error) {
	offDay.ID = int64(len(f.offDays) + 1)
	f.offDays = append(f.offDays, offDay)
	return offDay.ID, nil
}

func (f *fakeScheduleRepo) DeleteOffDay(ctx context.Context, businessID, id int64) error {
	return nil
}

func (f *fakeScheduleRepo) ListOffDays(ctx context.Context, businessID int64, locationID *int64, from, to time.Time) ([]domain.OffDay, error) {
	var result []domain.OffDay
	for _, od := range f.offDays {
		if od.BusinessID != businessID {
			continue
		}
		if od.Date.Before(from) || od.Date.After(to) {
			continue
		}
		result = append(result, od)
	}
	return result, nil
}

func (f *fakeScheduleRepo) GetOffDaysForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.OffDay, error) {
	return f.ListOffDays(ctx, businessID, nil, date, date)
}

func (f *fakeScheduleRepo) CreateSlotBlock(ctx context.Context, block domain.SlotBlock) (int64, error) {
	block.ID = int64(len(f.blocks) + 1)
	f.blocks = append(f.blocks, block)
	return block.ID, nil
}

func (f *fakeScheduleRepo) DeleteSlotBlock(ctx context.Context, businessID, id int64) error {
	return nil
}

func (f *fakeScheduleRepo) ListSlotBlocks(ctx context.Context, businessID int64, from, to time.Time) ([]domain.SlotBlock, error) {
	var result []domain.SlotBlock
	for _, b := range f.blocks {
		if b.BusinessID != businessID {
			continue
		}
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeScheduleRepo) GetSlotBlocks(ctx context.Context, offeringID int64, date time.Time) ([]domain.SlotBlock, error) {
	var result []domain.SlotBlock
	for _, b := range f.blocks {
		if b.OfferingID == offeringID && sameDay(b.Date, date) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking domain.Booking) (int64, error) {
	booking.ID = f.nextID
	f.nextID++
	f.bookings[booking.ID] = &booking
	return booking.ID, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	return booking, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	booking, ok := f.bookings[id]
	if !ok {
		return errors.New("бронь не найдена")
	}
	if update.Status != nil {
		booking.Status = *update.Status
	}
	if update.Date != nil {
		booking.Date = *update.Date
	}
	if update.StartTime != nil {
		booking.StartTime = *update.StartTime
	}
	if update.PaymentID != nil {
		booking.PaymentID = update.PaymentID
	}
	if update.Comment != nil {
		booking.Comment = *update.Comment
	}
	return nil
}

func (f *fakeBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range f.bookings {
		result = append(result, *b)
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByFilter(ctx context.Context, filter domain.BookingFilter) (int, error) {
	return len(f.bookings), nil
}

func (f *fakeBookingRepo) GetActiveForDate(ctx context.Context, businessID, offeringID int64, date time.Time) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range f.bookings {
		if b.BusinessID != businessID || b.OfferingID != offeringID {
			continue
		}
		if !sameDay(b.Date, date) {
			continue
		}
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
