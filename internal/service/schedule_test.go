package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zapis/internal/domain"
)

func newScheduleFixture(offering *domain.Offering) (*ScheduleServiceImpl, *fakeScheduleRepo) {
	offeringRepo := &fakeOfferingRepo{offerings: map[int64]*domain.Offering{}}
	if offering != nil {
		offeringRepo.offerings[offering.ID] = offering
	}

	scheduleRepo := &fakeScheduleRepo{}
	svc := NewScheduleService(scheduleRepo, offeringRepo, nil, zap.NewNop())

	return svc, scheduleRepo
}

func TestScheduleService_SetBusinessHours(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(nil)

	err := svc.SetBusinessHours(ctx, testBusinessID, domain.SetBusinessHoursDTO{
		Days: []domain.DayHoursDTO{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "18:00"},
			{DayOfWeek: 2, Ranges: []domain.TimeRangeDTO{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "14:00", EndTime: "18:00"},
			}},
			{DayOfWeek: 0, IsClosed: true},
		},
	})
	require.NoError(t, err)
}

func TestScheduleService_SetBusinessHours_EmptyDays(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(nil)

	err := svc.SetBusinessHours(ctx, testBusinessID, domain.SetBusinessHoursDTO{})
	assert.ErrorIs(t, err, domain.ErrEmptySchedule)
}

func TestScheduleService_SetBusinessHours_DuplicateDay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(nil)

	err := svc.SetBusinessHours(ctx, testBusinessID, domain.SetBusinessHoursDTO{
		Days: []domain.DayHoursDTO{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "18:00"},
			{DayOfWeek: 1, OpenTime: "10:00", CloseTime: "19:00"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "день недели указан дважды", err.Error())
}

func TestScheduleService_SetBusinessHours_InvertedRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(nil)

	err := svc.SetBusinessHours(ctx, testBusinessID, domain.SetBusinessHoursDTO{
		Days: []domain.DayHoursDTO{
			{DayOfWeek: 1, OpenTime: "18:00", CloseTime: "09:00"},
		},
	})
	assert.Error(t, err)
}

func TestScheduleService_SetOverride(t *testing.T) {
	ctx := context.Background()
	svc, scheduleRepo := newScheduleFixture(testOffering())

	err := svc.SetOverride(ctx, testBusinessID, testOfferingID, domain.SetOverrideDTO{
		DayOfWeek: 1,
		Ranges: []domain.TimeRangeDTO{
			{StartTime: "14:00", EndTime: "16:00"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, scheduleRepo.override)
	assert.Equal(t, testOfferingID, scheduleRepo.override.OfferingID)
	assert.Len(t, scheduleRepo.override.Ranges, 1)
}

func TestScheduleService_SetOverride_ForeignOffering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(testOffering())

	err := svc.SetOverride(ctx, testBusinessID+1, testOfferingID, domain.SetOverrideDTO{
		DayOfWeek: 1,
		IsClosed:  true,
	})
	require.Error(t, err)
	assert.Equal(t, "услуга принадлежит другому бизнесу", err.Error())
}

func TestScheduleService_SetOverride_OpenWithoutRanges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(testOffering())

	err := svc.SetOverride(ctx, testBusinessID, testOfferingID, domain.SetOverrideDTO{DayOfWeek: 1})
	assert.ErrorIs(t, err, domain.ErrEmptySchedule)
}

func TestScheduleService_OffDays(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(nil)

	id, err := svc.CreateOffDay(ctx, testBusinessID, domain.CreateOffDayDTO{
		Date:   "2026-09-14",
		Reason: "инвентаризация",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	offDays, err := svc.ListOffDays(ctx, testBusinessID, nil, "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	require.Len(t, offDays, 1)
	assert.Equal(t, "инвентаризация", offDays[0].Reason)

	_, err = svc.ListOffDays(ctx, testBusinessID, nil, "2026-09-30", "2026-09-01")
	assert.Error(t, err)
}

func TestScheduleService_SlotBlocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(testOffering())

	id, err := svc.CreateSlotBlock(ctx, testBusinessID, domain.CreateSlotBlockDTO{
		OfferingID: testOfferingID,
		Date:       "2026-09-14",
		StartTime:  "10:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	blocks, err := svc.ListSlotBlocks(ctx, testBusinessID, "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "10:00", blocks[0].StartTime.String())

	blocks, err = svc.ListSlotBlocks(ctx, testBusinessID, "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestScheduleService_CreateSlotBlock_BadTime(t *testing.T) {
	ctx := context.Background()
	svc, _ := newScheduleFixture(testOffering())

	_, err := svc.CreateSlotBlock(ctx, testBusinessID, domain.CreateSlotBlockDTO{
		OfferingID: testOfferingID,
		Date:       "2026-09-14",
		StartTime:  "25:99",
	})
	assert.Error(t, err)
}
