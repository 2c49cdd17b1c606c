package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/repository"
	"salon/internal/storage"
)

// CommissionCalculator resolves and stores the commission of a completed appointment.
type CommissionCalculator struct {
	repo    repository.CommissionRepository
	catalog repository.CatalogRepository
	clock   Clock
}

func NewCommissionCalculator(repo repository.CommissionRepository, catalog repository.CatalogRepository, clock Clock) *CommissionCalculator {
	if clock == nil {
		clock = realClock{}
	}
	return &CommissionCalculator{repo: repo, catalog: catalog, clock: clock}
}

// CalculateAndPersist returns the existing commission unchanged when the appointment already has one.
func (c *CommissionCalculator) CalculateAndPersist(
	ctx context.Context,
	employee *domain.Employee,
	service *domain.Service,
	appointment *domain.Appointment,
	actor domain.Actor,
) (*domain.Commission, error) {
	existing, err := c.repo.GetByAppointment(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	percent, source, err := c.ResolvePercent(ctx, employee, service)
	if err != nil {
		return nil, err
	}

	commission := &domain.Commission{
		EmployeeID:    employee.ID,
		AppointmentID: appointment.ID,
		ServiceID:     service.ID,
		BaseAmount:    appointment.Price,
		Percent:       percent,
		Amount:        domain.RoundMoney(appointment.Price * percent / 100),
		Source:        source,
		CreatedBy:     actor.UserID,
		CreatedAt:     c.clock.Now(),
	}

	stored, _, err := c.repo.Create(ctx, commission)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// ResolvePercent applies service rule, then the nearest category rule up the tree, then the base rate.
func (c *CommissionCalculator) ResolvePercent(ctx context.Context, employee *domain.Employee, service *domain.Service) (float64, domain.CommissionSource, error) {
	rule, err := c.repo.FindRuleForService(ctx, employee.ID, service.ID)
	if err != nil {
		return 0, "", err
	}
	if rule != nil {
		return rule.Percent, domain.CommissionSourceServiceRule, nil
	}

	visited := make(map[int64]struct{})
	categoryID := service.CategoryID
	for categoryID != nil {
		if _, seen := visited[*categoryID]; seen {
			break
		}
		visited[*categoryID] = struct{}{}

		rule, err := c.repo.FindRuleForCategory(ctx, employee.ID, *categoryID)
		if err != nil {
			return 0, "", err
		}
		if rule != nil {
			return rule.Percent, domain.CommissionSourceCategoryRule, nil
		}

		category, err := c.catalog.GetCategory(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				break
			}
			return 0, "", err
		}
		categoryID = category.ParentID
	}

	return employee.BaseCommissionRate(), domain.CommissionSourceBaseRate, nil
}

type CommissionServiceImpl struct {
	repo       repository.CommissionRepository
	catalog    repository.CatalogRepository
	calculator *CommissionCalculator
	reports    storage.ReportStorage
	clock      Clock
	logger     *zap.Logger
}

func NewCommissionService(
	repo repository.CommissionRepository,
	catalog repository.CatalogRepository,
	calculator *CommissionCalculator,
	reports storage.ReportStorage,
	clock Clock,
	logger *zap.Logger,
) *CommissionServiceImpl {
	if clock == nil {
		clock = realClock{}
	}
	return &CommissionServiceImpl{
		repo:       repo,
		catalog:    catalog,
		calculator: calculator,
		reports:    reports,
		clock:      clock,
		logger:     logger,
	}
}

func (s *CommissionServiceImpl) UpsertRule(ctx context.Context, actor domain.Actor, dto domain.UpsertCommissionRuleDTO) (*domain.CommissionRule, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrForbidden
	}
	if (dto.ServiceID == nil) == (dto.CategoryID == nil) {
		return nil, domain.Validationf("укажите либо услугу, либо категорию")
	}
	if dto.Percent < 0 || dto.Percent > 100 {
		return nil, domain.Validationf("процент комиссии должен быть в диапазоне 0-100")
	}

	if _, err := s.catalog.GetEmployee(ctx, dto.EmployeeID); err != nil {
		return nil, err
	}
	if dto.ServiceID != nil {
		if _, err := s.catalog.GetService(ctx, *dto.ServiceID); err != nil {
			return nil, err
		}
	}
	if dto.CategoryID != nil {
		if _, err := s.catalog.GetCategory(ctx, *dto.CategoryID); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	rule, err := s.repo.UpsertRule(ctx, &domain.CommissionRule{
		EmployeeID: dto.EmployeeID,
		ServiceID:  dto.ServiceID,
		CategoryID: dto.CategoryID,
		Percent:    dto.Percent,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.logger.Error("ошибка сохранения правила комиссии", zap.Int64("employeeID", dto.EmployeeID), zap.Error(err))
		return nil, err
	}

	return rule, nil
}

func (s *CommissionServiceImpl) DeleteRule(ctx context.Context, actor domain.Actor, id int64) error {
	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.DeleteRule(ctx, id)
}

func (s *CommissionServiceImpl) ListRules(ctx context.Context, actor domain.Actor, employeeID int64) ([]domain.CommissionRule, error) {
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ListRules(ctx, employeeID)
}

// List returns commissions; non-admins must scope the filter to themselves.
func (s *CommissionServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.CommissionFilter) ([]domain.Commission, error) {
	if actor.Role != domain.UserRoleAdmin {
		if filter.EmployeeID == nil {
			return nil, domain.ErrForbidden
		}
		if err := authorizeEmployeeScope(ctx, s.catalog, actor, *filter.EmployeeID); err != nil {
			return nil, err
		}
	}
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	return s.repo.List(ctx, filter)
}

// ExportStatement uploads a CSV of the employee's commissions created in [from, to) and returns a download link.
func (s *CommissionServiceImpl) ExportStatement(ctx context.Context, actor domain.Actor, employeeID int64, from, to time.Time) (*domain.CommissionStatement, error) {
	if actor.Role != domain.UserRoleAdmin {
		if err := authorizeEmployeeScope(ctx, s.catalog, actor, employeeID); err != nil {
			return nil, err
		}
	}
	if !from.Before(to) {
		return nil, domain.Validationf("некорректный период выписки")
	}
	if s.reports == nil {
		return nil, errors.New("хранилище отчетов не настроено")
	}

	employee, err := s.catalog.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	commissions, err := s.repo.List(ctx, domain.CommissionFilter{EmployeeID: &employeeID, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	data, total, err := renderStatement(employee, commissions)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("commissions_%s_%s.csv", from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	key, err := s.reports.UploadReport(ctx, statementPrefix(employeeID), filename, data, "text/csv")
	if err != nil {
		s.logger.Error("ошибка выгрузки выписки комиссий", zap.Int64("employeeID", employeeID), zap.Error(err))
		return nil, err
	}

	url, err := s.reports.PresignedURL(ctx, key)
	if err != nil {
		if delErr := s.reports.DeleteReport(ctx, key); delErr != nil {
			s.logger.Warn("не удалось удалить выписку без ссылки", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("выписка комиссий сформирована",
		zap.Int64("employeeID", employeeID),
		zap.Int("count", len(commissions)),
		zap.String("key", key))

	return &domain.CommissionStatement{
		EmployeeID:  employeeID,
		From:        from,
		To:          to,
		Count:       len(commissions),
		TotalAmount: total,
		ObjectKey:   key,
		URL:         url,
	}, nil
}

// DownloadStatement returns a previously exported statement; name is the last segment of its object key.
func (s *CommissionServiceImpl) DownloadStatement(ctx context.Context, actor domain.Actor, employeeID int64, name string) ([]byte, error) {
	if err := authorizeEmployeeScope(ctx, s.catalog, actor, employeeID); err != nil {
		return nil, err
	}
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return nil, domain.Validationf("некорректное имя выписки")
	}
	if s.reports == nil {
		return nil, errors.New("хранилище отчетов не настроено")
	}

	data, err := s.reports.GetReport(ctx, statementPrefix(employeeID)+"/"+name)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return nil, domain.NotFoundf("выписка %s не найдена", name)
		}
		return nil, err
	}
	return data, nil
}

func statementPrefix(employeeID int64) string {
	return fmt.Sprintf("statements/%d", employeeID)
}

func renderStatement(employee *domain.Employee, commissions []domain.Commission) ([]byte, float64, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"employee", "appointment_id", "service_id", "base_amount", "percent", "amount", "source", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}

	var total float64
	for _, c := range commissions {
		total += c.Amount
		record := []string{
			employee.FullName(),
			strconv.FormatInt(c.AppointmentID, 10),
			strconv.FormatInt(c.ServiceID, 10),
			strconv.FormatFloat(c.BaseAmount, 'f', 2, 64),
			strconv.FormatFloat(c.Percent, 'f', 2, 64),
			strconv.FormatFloat(c.Amount, 'f', 2, 64),
			string(c.Source),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, 0, err
		}
	}

	total = domain.RoundMoney(total)
	if err := w.Write([]string{"total", "", "", "", "", strconv.FormatFloat(total, 'f', 2, 64), "", ""}); err != nil {
		return nil, 0, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}

	return buf.Bytes(), total, nil
}
