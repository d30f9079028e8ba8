package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

func newBookingFixture(offering *domain.Offering) (*BookingServiceImpl, *fakeBookingRepo) {
	availabilitySvc, _, bookingRepo := newAvailabilityFixture(offering)

	offeringRepo := &fakeOfferingRepo{offerings: map[int64]*domain.Offering{}}
	if offering != nil {
		offeringRepo.offerings[offering.ID] = offering
	}

	svc := NewBookingService(bookingRepo, offeringRepo, availabilitySvc, nil, zap.NewNop())
	return svc, bookingRepo
}

func createDTO(startTime string) domain.CreateBookingDTO {
	return domain.CreateBookingDTO{
		BusinessID:    testBusinessID,
		OfferingID:    testOfferingID,
		CustomerName:  "Анна Петрова",
		CustomerPhone: "+79001234567",
		Date:          testDate,
		StartTime:     startTime,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	svc, bookingRepo := newBookingFixture(testOffering())

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	booking, ok := bookingRepo.bookings[id]
	require.True(t, ok)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, "10:00", booking.StartTime.String())
}

func TestBookingService_Create_SlotTaken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingFixture(testOffering())

	_, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createDTO("10:00"))
	assert.EqualError(t, err, "выбранное время недоступно")
}

func TestBookingService_Create_OutsideHours(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingFixture(testOffering())

	_, err := svc.Create(ctx, createDTO("20:00"))
	assert.EqualError(t, err, "выбранное время недоступно")
}

func TestBookingService_Create_ForeignOffering(t *testing.T) {
	ctx := context.Background()
	offering := testOffering()
	offering.BusinessID = 99
	svc, _ := newBookingFixture(offering)

	_, err := svc.Create(ctx, createDTO("10:00"))
	assert.EqualError(t, err, "услуга принадлежит другому бизнесу")
}

func TestBookingService_Cancel_FreesSlot(t *testing.T) {
	ctx := context.Background()
	svc, bookingRepo := newBookingFixture(testOffering())

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, id))
	assert.Equal(t, domain.BookingStatusCancelled, bookingRepo.bookings[id].Status)

	// отменённая бронь не занимает место
	_, err = svc.Create(ctx, createDTO("10:00"))
	assert.NoError(t, err)
}

func TestBookingService_Cancel_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingFixture(testOffering())

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, id))
	require.NoError(t, svc.Cancel(ctx, id))
}

func TestBookingService_Update_Reschedule(t *testing.T) {
	ctx := context.Background()
	svc, bookingRepo := newBookingFixture(testOffering())

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	newTime := "11:00"
	err = svc.Update(ctx, id, domain.UpdateBookingDTO{StartTime: &newTime})
	require.NoError(t, err)
	assert.Equal(t, "11:00", bookingRepo.bookings[id].StartTime.String())
}

func TestBookingService_Update_RescheduleToTakenSlot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingFixture(testOffering())

	_, err := svc.Create(ctx, createDTO("11:00"))
	require.NoError(t, err)

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	taken := "11:00"
	err = svc.Update(ctx, id, domain.UpdateBookingDTO{StartTime: &taken})
	assert.EqualError(t, err, "выбранное время недоступно")
}

func TestBookingService_Update_StatusOnly(t *testing.T) {
	ctx := context.Background()
	svc, bookingRepo := newBookingFixture(testOffering())

	id, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	confirmed := domain.BookingStatusConfirmed
	err = svc.Update(ctx, id, domain.UpdateBookingDTO{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, bookingRepo.bookings[id].Status)
}

func TestBookingService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingFixture(testOffering())

	confirmed := domain.BookingStatusConfirmed
	err := svc.Update(ctx, 42, domain.UpdateBookingDTO{Status: &confirmed})
	assert.EqualError(t, err, "бронь не найдена")
}

func TestBookingService_GroupCapacity(t *testing.T) {
	ctx := context.Background()
	offering := testOffering()
	offering.SlotCapacity = 2
	svc, _ := newBookingFixture(offering)

	_, err := svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createDTO("10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createDTO("10:00"))
	assert.EqualError(t, err, "выбранное время недоступно")
}
