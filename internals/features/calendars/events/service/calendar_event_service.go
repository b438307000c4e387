package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"churchbook_backend/internals/features/calendars/events/dto"
	"churchbook_backend/internals/features/calendars/events/model"
	userService "churchbook_backend/internals/features/users/users/service"
	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgEventNotFound = "일정을 찾을 수 없습니다"
	msgEventRange    = "종료 시간은 시작 시간보다 빠를 수 없습니다"
)

type EventService struct {
	store repository.Store
}

func NewEventService(store repository.Store) *EventService {
	return &EventService{store: store}
}

func checkRange(start, end time.Time) error {
	if end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, msgEventRange)
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, churchID, userID uuid.UUID, req dto.CreateEventRequest) (*model.CalendarEventModel, error) {
	if err := checkRange(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}
	var out *model.CalendarEventModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := userService.FindUser(ctx, tx, churchID, userID)
		if err != nil {
			return err
		}
		m := &model.CalendarEventModel{
			ChurchID: churchID,
			Title:    strings.TrimSpace(req.Title),
			Content:  req.Content,
			StartAt:  req.StartAt,
			EndAt:    req.EndAt,
			AllDay:   req.AllDay,
			Meta:     req.Meta,
			Creator:  snapsvc.FromUser(author),
		}
		if err := tx.CreateEvent(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

func (s *EventService) FindAll(ctx context.Context, churchID uuid.UUID, from, to time.Time) ([]model.CalendarEventModel, error) {
	return s.store.ListEvents(ctx, churchID, from, to)
}

func (s *EventService) FindByID(ctx context.Context, churchID, id uuid.UUID) (*model.CalendarEventModel, error) {
	m, err := s.store.FindEvent(ctx, churchID, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgEventNotFound)
	}
	return m, nil
}

func (s *EventService) Update(ctx context.Context, churchID, id uuid.UUID, req dto.UpdateEventRequest) (*model.CalendarEventModel, error) {
	var out *model.CalendarEventModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := tx.FindEvent(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgEventNotFound)
		}
		req.Apply(m)
		if err := checkRange(m.StartAt, m.EndAt); err != nil {
			return err
		}
		if err := tx.SaveEvent(ctx, m); err != nil {
			return helper.FromRepoError(err, msgEventNotFound)
		}
		out = m
		return nil
	})
	return out, err
}

func (s *EventService) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := tx.FindEvent(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgEventNotFound)
		}
		return helper.FromRepoError(tx.DeleteEvent(ctx, m.ID), msgEventNotFound)
	})
}
