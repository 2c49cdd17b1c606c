package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/repository"
)

// ConflictDetector finds calendar events overlapping a proposed interval.
// Callers that write afterwards must run it inside the same transaction, after locking the calendar.
type ConflictDetector struct {
	appointments repository.AppointmentRepository
	timeBlocks   repository.TimeBlockRepository
}

func NewConflictDetector(appointments repository.AppointmentRepository, timeBlocks repository.TimeBlockRepository) *ConflictDetector {
	return &ConflictDetector{appointments: appointments, timeBlocks: timeBlocks}
}

func (d *ConflictDetector) Detect(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]domain.ConflictingEvent, error) {
	if !start.Before(end) {
		return nil, domain.Validationf("время начала должно быть раньше времени окончания")
	}

	booked, err := d.appointments.FindOverlapping(ctx, employeeID, start, end, excludeID)
	if err != nil {
		return nil, err
	}

	blocked, err := d.timeBlocks.FindOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	events := make([]domain.ConflictingEvent, 0, len(booked)+len(blocked))
	for _, ev := range append(booked, blocked...) {
		if ev.Kind == domain.ConflictAppointment && excludeID != nil && ev.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, ev.StartTime, ev.EndTime) {
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	return events, nil
}

type ConflictServiceImpl struct {
	detector *ConflictDetector
	tx       TransactionManager
	logger   *zap.Logger
}

func NewConflictService(detector *ConflictDetector, tx TransactionManager, logger *zap.Logger) *ConflictServiceImpl {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &ConflictServiceImpl{detector: detector, tx: tx, logger: logger}
}

func (s *ConflictServiceImpl) CheckConflict(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) (*domain.ConflictResult, error) {
	var events []domain.ConflictingEvent

	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		events, err = s.detector.Detect(ctx, employeeID, start.UTC(), end.UTC(), excludeID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки конфликтов: %w", err)
	}

	return &domain.ConflictResult{
		HasConflict:       len(events) > 0,
		ConflictingEvents: events,
	}, nil
}
