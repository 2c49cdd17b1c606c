package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"salon/config"
	"salon/internal/domain"
	"salon/internal/repository"
	"salon/internal/storage"
)

var (
	// Sunday; the next day is Monday 2026-03-02.
	testNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

// serialTransactionManager runs one transaction at a time, standing in for the advisory lock.
type serialTransactionManager struct {
	mu sync.Mutex
}

func (m *serialTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *serialTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	mu       sync.Mutex
	items    map[int64]*domain.Appointment
	seq      int64
	locks    []int64
	countErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: make(map[int64]*domain.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	clone := *a
	clone.ID = r.seq
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return nil, domain.NotFoundf("запись %d не найдена", id)
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAppointmentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; !ok {
		return domain.NotFoundf("запись %d не найдена", a.ID)
	}
	clone := *a
	r.items[a.ID] = &clone
	return nil
}

func (r *fakeAppointmentRepo) filtered(filter domain.AppointmentFilter) []domain.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.Appointment, 0)
	for _, a := range r.items {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ClientID != nil && a.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return r.filtered(filter), nil
}

func (r *fakeAppointmentRepo) CountByFilter(_ context.Context, filter domain.AppointmentFilter) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.filtered(filter)), nil
}

func (r *fakeAppointmentRepo) FindOverlapping(_ context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]domain.ConflictingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]domain.ConflictingEvent, 0)
	for _, a := range r.items {
		if a.EmployeeID != employeeID || a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, a.StartTime, a.EndTime) {
			events = append(events, domain.ConflictingEvent{
				Kind:      domain.ConflictAppointment,
				ID:        a.ID,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
				Label:     string(a.Status),
			})
		}
	}
	return events, nil
}

func (r *fakeAppointmentRepo) LockEmployeeCalendar(_ context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, employeeID)
	return nil
}

func (r *fakeAppointmentRepo) nonCancelled(employeeID int64) []domain.Appointment {
	result := make([]domain.Appointment, 0)
	for _, a := range r.filtered(domain.AppointmentFilter{EmployeeID: &employeeID}) {
		if a.Status != domain.AppointmentStatusCancelled {
			result = append(result, a)
		}
	}
	return result
}

type fakeTimeBlockRepo struct {
	mu    sync.Mutex
	items map[int64]*domain.TimeBlock
	seq   int64
}

func newFakeTimeBlockRepo() *fakeTimeBlockRepo {
	return &fakeTimeBlockRepo{items: make(map[int64]*domain.TimeBlock)}
}

func (r *fakeTimeBlockRepo) Create(_ context.Context, block *domain.TimeBlock) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	clone := *block
	clone.ID = r.seq
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeTimeBlockRepo) GetByID(_ context.Context, id int64) (*domain.TimeBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	block, ok := r.items[id]
	if !ok {
		return nil, domain.NotFoundf("блокировка %d не найдена", id)
	}
	clone := *block
	return &clone, nil
}

func (r *fakeTimeBlockRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.NotFoundf("блокировка %d не найдена", id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTimeBlockRepo) ListByEmployee(_ context.Context, employeeID int64, from, to time.Time) ([]domain.TimeBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.TimeBlock, 0)
	for _, b := range r.items {
		if b.EmployeeID == employeeID && domain.Overlaps(from, to, b.StartTime, b.EndTime) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *fakeTimeBlockRepo) FindOverlapping(_ context.Context, employeeID int64, start, end time.Time) ([]domain.ConflictingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]domain.ConflictingEvent, 0)
	for _, b := range r.items {
		if b.EmployeeID == employeeID && domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			events = append(events, domain.ConflictingEvent{
				Kind:      domain.ConflictTimeBlock,
				ID:        b.ID,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
				Label:     string(b.Kind),
			})
		}
	}
	return events, nil
}

type fakeTimetableRepo struct {
	timetables map[int64]*domain.Timetable
	exceptions map[int64]*domain.TimetableException
	seq        int64
	listCalls  int
}

func newFakeTimetableRepo() *fakeTimetableRepo {
	return &fakeTimetableRepo{
		timetables: make(map[int64]*domain.Timetable),
		exceptions: make(map[int64]*domain.TimetableException),
	}
}

func (r *fakeTimetableRepo) Create(_ context.Context, t *domain.Timetable) (int64, error) {
	r.seq++
	clone := *t
	clone.ID = r.seq
	clone.Slots = append([]domain.TimetableSlot(nil), t.Slots...)
	r.timetables[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeTimetableRepo) GetByID(_ context.Context, id int64) (*domain.Timetable, error) {
	t, ok := r.timetables[id]
	if !ok {
		return nil, domain.NotFoundf("расписание %d не найдено", id)
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTimetableRepo) ListByEmployee(_ context.Context, employeeID int64, activeOnly bool) ([]domain.Timetable, error) {
	r.listCalls++
	result := make([]domain.Timetable, 0)
	for _, t := range r.timetables {
		if t.EmployeeID != employeeID || (activeOnly && !t.IsActive) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTimetableRepo) DeactivateActive(_ context.Context, employeeID int64) (int64, error) {
	var n int64
	for _, t := range r.timetables {
		if t.EmployeeID == employeeID && t.IsActive {
			t.IsActive = false
			n++
		}
	}
	return n, nil
}

func (r *fakeTimetableRepo) Deactivate(_ context.Context, id int64) error {
	t, ok := r.timetables[id]
	if !ok {
		return domain.NotFoundf("расписание %d не найдено", id)
	}
	t.IsActive = false
	return nil
}

func (r *fakeTimetableRepo) CreateException(_ context.Context, e *domain.TimetableException) (int64, error) {
	for _, existing := range r.exceptions {
		if existing.TimetableID == e.TimetableID && existing.Date.Equal(e.Date) {
			return 0, domain.Validationf("исключение на дату уже существует")
		}
	}
	r.seq++
	clone := *e
	clone.ID = r.seq
	r.exceptions[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeTimetableRepo) GetException(_ context.Context, id int64) (*domain.TimetableException, error) {
	e, ok := r.exceptions[id]
	if !ok {
		return nil, domain.NotFoundf("исключение %d не найдено", id)
	}
	clone := *e
	return &clone, nil
}

func (r *fakeTimetableRepo) DeleteException(_ context.Context, id int64) error {
	if _, ok := r.exceptions[id]; !ok {
		return domain.NotFoundf("исключение %d не найдено", id)
	}
	delete(r.exceptions, id)
	return nil
}

func (r *fakeTimetableRepo) UpdateExceptionStatus(_ context.Context, id int64, status domain.ExceptionStatus, reviewedBy int64) error {
	e, ok := r.exceptions[id]
	if !ok {
		return domain.NotFoundf("исключение %d не найдено", id)
	}
	e.Status = status
	e.ReviewedBy = &reviewedBy
	return nil
}

func (r *fakeTimetableRepo) ListExceptions(_ context.Context, timetableIDs []int64, from, to time.Time) ([]domain.TimetableException, error) {
	ids := make(map[int64]bool, len(timetableIDs))
	for _, id := range timetableIDs {
		ids[id] = true
	}
	result := make([]domain.TimetableException, 0)
	for _, e := range r.exceptions {
		if ids[e.TimetableID] && !e.Date.Before(from) && !e.Date.After(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

type fakeCatalog struct {
	employees  map[int64]*domain.Employee
	services   map[int64]*domain.Service
	variants   map[int64]*domain.ServiceVariant
	categories map[int64]*domain.ServiceCategory
	contacts   map[int64]*domain.Contact
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		employees:  make(map[int64]*domain.Employee),
		services:   make(map[int64]*domain.Service),
		variants:   make(map[int64]*domain.ServiceVariant),
		categories: make(map[int64]*domain.ServiceCategory),
		contacts:   make(map[int64]*domain.Contact),
	}
}

func (c *fakeCatalog) GetEmployee(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := c.employees[id]
	if !ok {
		return nil, domain.NotFoundf("сотрудник %d не найден", id)
	}
	clone := *e
	return &clone, nil
}

func (c *fakeCatalog) GetEmployeeByUserID(_ context.Context, userID int64) (*domain.Employee, error) {
	for _, e := range c.employees {
		if e.UserID == userID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.NotFoundf("сотрудник пользователя %d не найден", userID)
}

func (c *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, domain.NotFoundf("услуга %d не найдена", id)
	}
	clone := *s
	return &clone, nil
}

func (c *fakeCatalog) GetServiceVariant(_ context.Context, id int64) (*domain.ServiceVariant, error) {
	v, ok := c.variants[id]
	if !ok {
		return nil, domain.NotFoundf("вариант %d не найден", id)
	}
	clone := *v
	return &clone, nil
}

func (c *fakeCatalog) GetCategory(_ context.Context, id int64) (*domain.ServiceCategory, error) {
	cat, ok := c.categories[id]
	if !ok {
		return nil, domain.NotFoundf("категория %d не найдена", id)
	}
	clone := *cat
	return &clone, nil
}

func (c *fakeCatalog) GetContact(_ context.Context, userID int64) (*domain.Contact, error) {
	contact, ok := c.contacts[userID]
	if !ok {
		return nil, domain.NotFoundf("пользователь %d не найден", userID)
	}
	clone := *contact
	return &clone, nil
}

type fakeCommissionRepo struct {
	rules       []domain.CommissionRule
	commissions map[int64]*domain.Commission
	seq         int64
	inserts     int
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{commissions: make(map[int64]*domain.Commission)}
}

func (r *fakeCommissionRepo) FindRuleForService(_ context.Context, employeeID, serviceID int64) (*domain.CommissionRule, error) {
	for _, rule := range r.rules {
		if rule.EmployeeID == employeeID && rule.ServiceID != nil && *rule.ServiceID == serviceID {
			clone := rule
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCommissionRepo) FindRuleForCategory(_ context.Context, employeeID, categoryID int64) (*domain.CommissionRule, error) {
	for _, rule := range r.rules {
		if rule.EmployeeID == employeeID && rule.CategoryID != nil && *rule.CategoryID == categoryID {
			clone := rule
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCommissionRepo) UpsertRule(_ context.Context, rule *domain.CommissionRule) (*domain.CommissionRule, error) {
	for i, existing := range r.rules {
		sameService := rule.ServiceID != nil && existing.ServiceID != nil && *existing.ServiceID == *rule.ServiceID
		sameCategory := rule.CategoryID != nil && existing.CategoryID != nil && *existing.CategoryID == *rule.CategoryID
		if existing.EmployeeID == rule.EmployeeID && (sameService || sameCategory) {
			r.rules[i].Percent = rule.Percent
			clone := r.rules[i]
			return &clone, nil
		}
	}
	r.seq++
	clone := *rule
	clone.ID = r.seq
	r.rules = append(r.rules, clone)
	return &clone, nil
}

func (r *fakeCommissionRepo) DeleteRule(_ context.Context, id int64) error {
	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundf("правило %d не найдено", id)
}

func (r *fakeCommissionRepo) ListRules(_ context.Context, employeeID int64) ([]domain.CommissionRule, error) {
	result := make([]domain.CommissionRule, 0)
	for _, rule := range r.rules {
		if rule.EmployeeID == employeeID {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *fakeCommissionRepo) GetByAppointment(_ context.Context, appointmentID int64) (*domain.Commission, error) {
	c, ok := r.commissions[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCommissionRepo) Create(_ context.Context, c *domain.Commission) (*domain.Commission, bool, error) {
	if existing, ok := r.commissions[c.AppointmentID]; ok {
		clone := *existing
		return &clone, false, nil
	}
	r.inserts++
	r.seq++
	clone := *c
	clone.ID = r.seq
	r.commissions[c.AppointmentID] = &clone
	result := clone
	return &result, true, nil
}

func (r *fakeCommissionRepo) List(_ context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	result := make([]domain.Commission, 0)
	for _, c := range r.commissions {
		if filter.EmployeeID != nil && c.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && c.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !c.CreatedAt.Before(*filter.To) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppointmentID < result[j].AppointmentID })
	return result, nil
}

type recordingNotifier struct {
	mu            sync.Mutex
	confirmations []domain.BookingDetails
	followUps     []domain.BookingDetails
	err           error
}

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, _ domain.Contact, details domain.BookingDetails) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, details)
	return n.err
}

func (n *recordingNotifier) SendFollowUp(_ context.Context, _ domain.Contact, details domain.BookingDetails) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.followUps = append(n.followUps, details)
	return n.err
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (a *recordingAudit) LogAction(_ context.Context, _ domain.Actor, action string, _ map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return a.err
}

type cachedSlots struct {
	version int64
	slots   []domain.AvailabilitySlot
}

type memoryCache struct {
	versions    map[int64]int64
	entries     map[int64]cachedSlots
	invalidated []int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{versions: make(map[int64]int64), entries: make(map[int64]cachedSlots)}
}

func (c *memoryCache) Get(_ context.Context, employeeID int64, _, _ time.Time) ([]domain.AvailabilitySlot, int64, bool, error) {
	version := c.versions[employeeID]
	entry, ok := c.entries[employeeID]
	if !ok || entry.version != version {
		return nil, version, false, nil
	}
	return entry.slots, version, true, nil
}

func (c *memoryCache) Set(_ context.Context, employeeID, version int64, _, _ time.Time, slots []domain.AvailabilitySlot) error {
	c.entries[employeeID] = cachedSlots{version: version, slots: slots}
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, employeeID int64) error {
	c.versions[employeeID]++
	c.invalidated = append(c.invalidated, employeeID)
	return nil
}

type memoryReports struct {
	objects    map[string][]byte
	presignErr error
}

func (m *memoryReports) UploadReport(_ context.Context, prefix, filename string, data []byte, _ string) (string, error) {
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	key := prefix + "/" + filename
	m.objects[key] = data
	return key, nil
}

func (m *memoryReports) DeleteReport(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryReports) GetReport(_ context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrReportNotFound
	}
	return data, nil
}

func (m *memoryReports) PresignedURL(_ context.Context, key string) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	return "https://reports.local/" + key, nil
}

// fixture wires every service on top of in-memory fakes.
type fixture struct {
	appointments *fakeAppointmentRepo
	timeBlocks   *fakeTimeBlockRepo
	timetables   *fakeTimetableRepo
	catalog      *fakeCatalog
	commissions  *fakeCommissionRepo
	notifier     *recordingNotifier
	audit        *recordingAudit
	cache        *memoryCache
	reports      *memoryReports
	clock        *stubClock
	cfg          *config.Config
	services     *Services
}

const (
	employeeID     = int64(1)
	employeeUserID = int64(100)
	clientUserID   = int64(200)
	adminUserID    = int64(300)
	serviceID      = int64(10)
)

var (
	clientActor   = domain.Actor{UserID: clientUserID, Role: domain.UserRoleClient}
	employeeActor = domain.Actor{UserID: employeeUserID, Role: domain.UserRoleEmployee}
	adminActor    = domain.Actor{UserID: adminUserID, Role: domain.UserRoleAdmin}
)

func newFixture() *fixture {
	f := &fixture{
		appointments: newFakeAppointmentRepo(),
		timeBlocks:   newFakeTimeBlockRepo(),
		timetables:   newFakeTimetableRepo(),
		catalog:      newFakeCatalog(),
		commissions:  newFakeCommissionRepo(),
		notifier:     &recordingNotifier{},
		audit:        &recordingAudit{},
		cache:        newMemoryCache(),
		reports:      &memoryReports{},
		clock:        &stubClock{now: testNow},
		cfg: &config.Config{
			Scheduling: config.SchedulingConfig{
				Timezone:                 "UTC",
				Location:                 time.UTC,
				AllowPastBookingForStaff: true,
				MaxAvailabilityDays:      62,
				NotificationTimeout:      time.Second,
			},
		},
	}

	rate := 10.0
	f.catalog.employees[employeeID] = &domain.Employee{
		ID:             employeeID,
		UserID:         employeeUserID,
		FirstName:      "Anna",
		LastName:       "Nowak",
		CommissionRate: &rate,
		IsActive:       true,
	}
	f.catalog.services[serviceID] = &domain.Service{
		ID:              serviceID,
		Name:            "Strzyżenie",
		DurationMinutes: 60,
		Price:           100,
		IsActive:        true,
	}
	f.catalog.contacts[clientUserID] = &domain.Contact{UserID: clientUserID, Name: "Jan Kowalski", Email: "jan@example.com"}

	f.rebuild()
	return f
}

func (f *fixture) rebuild() {
	f.services = NewServices(Deps{
		Repos: &repository.Repositories{
			Appointment: f.appointments,
			TimeBlock:   f.timeBlocks,
			Timetable:   f.timetables,
			Catalog:     f.catalog,
			Commission:  f.commissions,
		},
		Logger:   zap.NewNop(),
		Config:   f.cfg,
		Notifier: f.notifier,
		Audit:    f.audit,
		Cache:    f.cache,
		Reports:  f.reports,
		Clock:    f.clock,
		Tx:       &serialTransactionManager{},
	})
}

func (f *fixture) book(start time.Time) (*domain.Appointment, error) {
	return f.services.Appointment.Create(context.Background(), clientActor, domain.CreateAppointmentDTO{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		StartTime:  start,
	})
}
