package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"salon/config"
	"salon/internal/domain"
	"salon/internal/repository"
)

type AvailabilityServiceImpl struct {
	timetableRepo repository.TimetableRepository
	catalogRepo   repository.CatalogRepository
	cache         AvailabilityCache
	cfg           config.SchedulingConfig
	logger        *zap.Logger
}

func NewAvailabilityService(
	timetableRepo repository.TimetableRepository,
	catalogRepo repository.CatalogRepository,
	cache AvailabilityCache,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}
	return &AvailabilityServiceImpl{
		timetableRepo: timetableRepo,
		catalogRepo:   catalogRepo,
		cache:         cache,
		cfg:           cfg,
		logger:        logger,
	}
}

// GetAvailability resolves one or more slots for every calendar day in [from, to].
func (s *AvailabilityServiceImpl) GetAvailability(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AvailabilitySlot, error) {
	from = domain.CivilDate(from, time.UTC)
	to = domain.CivilDate(to, time.UTC)

	if to.Before(from) {
		return nil, domain.Validationf("дата окончания раньше даты начала")
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if s.cfg.MaxAvailabilityDays > 0 && days > s.cfg.MaxAvailabilityDays {
		return nil, domain.Validationf("период не может превышать %d дней", s.cfg.MaxAvailabilityDays)
	}

	if _, err := s.catalogRepo.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	cacheable := true
	cached, version, ok, err := s.cache.Get(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Warn("ошибка чтения кэша доступности", zap.Int64("employeeID", employeeID), zap.Error(err))
		cacheable = false
	} else if ok {
		return cached, nil
	}

	timetables, err := s.timetableRepo.ListByEmployee(ctx, employeeID, true)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписаний: %w", err)
	}

	ids := make([]int64, 0, len(timetables))
	for _, t := range timetables {
		ids = append(ids, t.ID)
	}

	exceptions, err := s.timetableRepo.ListExceptions(ctx, ids, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения исключений: %w", err)
	}

	slots := ResolveAvailability(timetables, exceptions, from, to)

	if cacheable {
		if err := s.cache.Set(ctx, employeeID, version, from, to, slots); err != nil {
			s.logger.Warn("ошибка записи кэша доступности", zap.Int64("employeeID", employeeID), zap.Error(err))
		}
	}

	return slots, nil
}

// ResolveAvailability is the pure resolution step: no I/O, deterministic for its inputs.
func ResolveAvailability(timetables []domain.Timetable, exceptions []domain.TimetableException, from, to time.Time) []domain.AvailabilitySlot {
	ordered := make([]domain.Timetable, 0, len(timetables))
	for _, t := range timetables {
		if t.IsActive {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].ValidFrom.Equal(ordered[j].ValidFrom) {
			return ordered[i].ValidFrom.After(ordered[j].ValidFrom)
		}
		return ordered[i].ID > ordered[j].ID
	})

	byDay := make(map[exceptionKey]domain.TimetableException, len(exceptions))
	for _, e := range exceptions {
		if !e.Overrides() {
			continue
		}
		byDay[exceptionKey{timetableID: e.TimetableID, date: e.Date.Format(domain.DateLayout)}] = e
	}

	result := make([]domain.AvailabilitySlot, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		result = append(result, resolveDay(day, ordered, byDay)...)
	}

	return result
}

type exceptionKey struct {
	timetableID int64
	date        string
}

func resolveDay(day time.Time, ordered []domain.Timetable, exceptions map[exceptionKey]domain.TimetableException) []domain.AvailabilitySlot {
	weekday := domain.WeekdayIndex(day)

	var timetable *domain.Timetable
	for i := range ordered {
		if ordered[i].Covers(day) {
			timetable = &ordered[i]
			break
		}
	}

	if timetable == nil {
		return []domain.AvailabilitySlot{closedDay(day, weekday)}
	}

	if exception, ok := exceptions[exceptionKey{timetableID: timetable.ID, date: day.Format(domain.DateLayout)}]; ok {
		exceptionType := exception.Type
		slot := closedDay(day, weekday)
		slot.IsException = true
		slot.ExceptionType = &exceptionType

		if exception.Type == domain.ExceptionCustomHours && !exception.IsAllDay &&
			exception.StartTime != nil && exception.EndTime != nil {
			slot.StartTime = *exception.StartTime
			slot.EndTime = *exception.EndTime
			slot.IsAvailable = true
		}

		return []domain.AvailabilitySlot{slot}
	}

	working := make([]domain.TimetableSlot, 0)
	for _, ts := range timetable.Slots {
		if ts.DayOfWeek == weekday && !ts.IsBreak {
			working = append(working, ts)
		}
	}

	if len(working) == 0 {
		return []domain.AvailabilitySlot{closedDay(day, weekday)}
	}

	sort.SliceStable(working, func(i, j int) bool {
		return working[i].StartTime < working[j].StartTime
	})

	slots := make([]domain.AvailabilitySlot, 0, len(working))
	for _, ts := range working {
		slots = append(slots, domain.AvailabilitySlot{
			Date:        day,
			DayOfWeek:   weekday,
			StartTime:   ts.StartTime,
			EndTime:     ts.EndTime,
			IsAvailable: true,
		})
	}

	return slots
}

func closedDay(day time.Time, weekday int) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{
		Date:      day,
		DayOfWeek: weekday,
		StartTime: "00:00",
		EndTime:   "00:00",
	}
}

// withinAvailability reports whether [start, end) fits inside one available slot.
func withinAvailability(slots []domain.AvailabilitySlot, start, end time.Time, loc *time.Location) bool {
	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}
		slotStart, slotEnd, err := slot.Window(loc)
		if err != nil {
			continue
		}
		if !start.Before(slotStart) && !end.After(slotEnd) {
			return true
		}
	}
	return false
}
