package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchbook_backend/internals/constants"
	"churchbook_backend/internals/features/calendars/events/dto"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository/memory"
)

func setup(t *testing.T) (context.Context, *memory.Store, uuid.UUID, *userModel.UserModel) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	ch := &churchModel.ChurchModel{Name: "사랑의교회"}
	require.NoError(t, store.CreateChurch(ctx, ch))
	u := &userModel.UserModel{ChurchID: ch.ID, Name: "셀장", Role: constants.RoleLeader, Rank: constants.RankSaint}
	require.NoError(t, store.CreateUser(ctx, u))
	return ctx, store, ch.ID, u
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func at(day int, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestCreate_SnapshotsCreator(t *testing.T) {
	ctx, store, church, u := setup(t)
	svc := NewEventService(store)

	m, err := svc.Create(ctx, church, u.ID, dto.CreateEventRequest{Title: " 수련회 ", StartAt: at(1, 9), EndAt: at(2, 18)})
	require.NoError(t, err)
	assert.Equal(t, "수련회", m.Title)
	assert.True(t, m.Creator.IsAuthor(u.ID))

	got, err := svc.FindByID(ctx, church, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "셀장", got.Creator.Name)

	_, err = svc.FindByID(ctx, uuid.New(), m.ID)
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestCreate_RejectsInvertedRange(t *testing.T) {
	ctx, store, church, u := setup(t)
	svc := NewEventService(store)

	_, err := svc.Create(ctx, church, u.ID, dto.CreateEventRequest{Title: "x", StartAt: at(2, 9), EndAt: at(1, 9)})
	requireStatus(t, err, fiber.StatusBadRequest)

	_, err = svc.Create(ctx, church, uuid.New(), dto.CreateEventRequest{Title: "x", StartAt: at(1, 9), EndAt: at(1, 10)})
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestFindAll_ReturnsOverlappingEventsInOrder(t *testing.T) {
	ctx, store, church, u := setup(t)
	svc := NewEventService(store)

	for _, r := range []dto.CreateEventRequest{
		{Title: "late", StartAt: at(20, 9), EndAt: at(20, 10)},
		{Title: "early", StartAt: at(5, 9), EndAt: at(5, 10)},
		{Title: "spanning", StartAt: time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), EndAt: at(2, 0)},
		{Title: "april", StartAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), EndAt: time.Date(2024, time.April, 1, 1, 0, 0, 0, time.UTC)},
	} {
		_, err := svc.Create(ctx, church, u.ID, r)
		require.NoError(t, err)
	}

	from, to, err := dto.EventQuery{Year: "2024", Month: "3"}.Range(time.Now().UTC())
	require.NoError(t, err)
	rows, err := svc.FindAll(ctx, church, from.UTC(), to.UTC())
	require.NoError(t, err)

	var titles []string
	for _, r := range rows {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"spanning", "early", "late"}, titles)
}

func TestUpdate_ValidatesMergedRange(t *testing.T) {
	ctx, store, church, u := setup(t)
	svc := NewEventService(store)
	m, err := svc.Create(ctx, church, u.ID, dto.CreateEventRequest{Title: "예배", StartAt: at(3, 9), EndAt: at(3, 11)})
	require.NoError(t, err)

	bad := at(3, 8)
	_, err = svc.Update(ctx, church, m.ID, dto.UpdateEventRequest{EndAt: &bad})
	requireStatus(t, err, fiber.StatusBadRequest)

	title, allDay := "주일예배", true
	got, err := svc.Update(ctx, church, m.ID, dto.UpdateEventRequest{Title: &title, AllDay: &allDay})
	require.NoError(t, err)
	assert.Equal(t, "주일예배", got.Title)
	assert.True(t, got.AllDay)
	assert.Equal(t, at(3, 11), got.EndAt)
}

func TestDelete(t *testing.T) {
	ctx, store, church, u := setup(t)
	svc := NewEventService(store)
	m, err := svc.Create(ctx, church, u.ID, dto.CreateEventRequest{Title: "예배", StartAt: at(3, 9), EndAt: at(3, 11)})
	require.NoError(t, err)

	requireStatus(t, svc.Delete(ctx, uuid.New(), m.ID), fiber.StatusNotFound)
	require.NoError(t, svc.Delete(ctx, church, m.ID))
	requireStatus(t, svc.Delete(ctx, church, m.ID), fiber.StatusNotFound)
}
