package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zapis/internal/availability"
	"zapis/internal/domain"
)

const (
	testBusinessID = int64(1)
	testOfferingID = int64(5)
	testDate       = "2026-09-14" // понедельник
)

func testOffering() *domain.Offering {
	return &domain.Offering{
		ID:              testOfferingID,
		BusinessID:      testBusinessID,
		Name:            "Стрижка",
		DurationMinutes: 60,
		SlotCapacity:    1,
		IsActive:        true,
	}
}

func mondayWindow(open, close string) *domain.DayScheduleWindow {
	openTime, _ := domain.ParseTimeOfDay(open)
	closeTime, _ := domain.ParseTimeOfDay(close)
	return &domain.DayScheduleWindow{
		BusinessID: testBusinessID,
		DayOfWeek:  1,
		OpenTime:   openTime,
		CloseTime:  closeTime,
	}
}

func newAvailabilityFixture(offering *domain.Offering) (*AvailabilityServiceImpl, *fakeScheduleRepo, *fakeBookingRepo) {
	offeringRepo := &fakeOfferingRepo{offerings: map[int64]*domain.Offering{}}
	if offering != nil {
		offeringRepo.offerings[offering.ID] = offering
	}

	scheduleRepo := &fakeScheduleRepo{window: mondayWindow("09:00", "12:00")}
	bookingRepo := newFakeBookingRepo()

	svc := NewAvailabilityService(offeringRepo, scheduleRepo, bookingRepo, nil, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}

	return svc, scheduleRepo, bookingRepo
}

func slotStarts(result *availability.Result) []string {
	starts := make([]string, 0, len(result.Slots))
	for _, slot := range result.Slots {
		starts = append(starts, slot.Start.String())
	}
	return starts
}

func TestAvailabilityService_GetSlots(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAvailabilityFixture(testOffering())

	result, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(result))
	assert.Empty(t, result.Reason)
}

func TestAvailabilityService_GetSlots_BookingOccupiesSlot(t *testing.T) {
	ctx := context.Background()
	svc, _, bookingRepo := newAvailabilityFixture(testOffering())

	start, _ := domain.ParseTimeOfDay("10:00")
	_, err := bookingRepo.Create(ctx, domain.Booking{
		BusinessID: testBusinessID,
		OfferingID: testOfferingID,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:  start,
		Status:     domain.BookingStatusConfirmed,
	})
	require.NoError(t, err)

	result, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(result))
}

func TestAvailabilityService_GetSlots_OffDay(t *testing.T) {
	ctx := context.Background()
	svc, scheduleRepo, _ := newAvailabilityFixture(testOffering())

	scheduleRepo.offDays = append(scheduleRepo.offDays, domain.OffDay{
		BusinessID: testBusinessID,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Reason:     "инвентаризация",
	})

	result, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, testDate)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, availability.ReasonOffDay, result.Reason)
}

func TestAvailabilityService_GetSlots_ForeignOffering(t *testing.T) {
	ctx := context.Background()
	offering := testOffering()
	offering.BusinessID = 99
	svc, _, _ := newAvailabilityFixture(offering)

	_, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, testDate)
	assert.EqualError(t, err, "услуга принадлежит другому бизнесу")
}

func TestAvailabilityService_GetSlots_InactiveOffering(t *testing.T) {
	ctx := context.Background()
	offering := testOffering()
	offering.IsActive = false
	svc, _, _ := newAvailabilityFixture(offering)

	_, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, testDate)
	assert.EqualError(t, err, "услуга недоступна для записи")
}

func TestAvailabilityService_GetSlots_BadDate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAvailabilityFixture(testOffering())

	_, err := svc.GetSlots(ctx, testBusinessID, testOfferingID, nil, "14.09.2026")
	assert.Error(t, err)
}

func TestAvailabilityService_GetOffDays(t *testing.T) {
	ctx := context.Background()
	svc, scheduleRepo, _ := newAvailabilityFixture(testOffering())

	scheduleRepo.offDays = append(scheduleRepo.offDays,
		domain.OffDay{BusinessID: testBusinessID, Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		domain.OffDay{BusinessID: testBusinessID, Date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)},
	)

	offDays, err := svc.GetOffDays(ctx, testBusinessID, nil, "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	require.Len(t, offDays, 1)
	assert.Equal(t, 10, offDays[0].Date.Day())

	_, err = svc.GetOffDays(ctx, testBusinessID, nil, "2026-09-30", "2026-09-01")
	assert.EqualError(t, err, "конец периода раньше начала")
}
