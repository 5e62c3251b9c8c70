package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/calendar"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/utils"
)

const (
	opCalculateRetouch = "calculate_retouch_date"
	opUpdateRetouch    = "update_retouch_date"
	opListByRetouch    = "get_customers_by_retouch"
	opListConfigs      = "get_retouch_configs"
	opUpsertConfig     = "upsert_retouch_config"
	opSetConfigActive  = "set_retouch_config_active"
	opListServices     = "list_services"
)

// CustomerRetouchSummary — строка списка «кого пора позвать».
type CustomerRetouchSummary struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	NextRetouchDate    *time.Time `json:"nextRetouchDate"`
	DaysUntilRetouch   *int       `json:"daysUntilRetouch"`
	RetouchServiceID   *uuid.UUID `json:"retouchServiceId"`
	RetouchServiceName *string    `json:"retouchServiceName"`
}

type ServiceOption struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes *int64    `json:"durationMinutes"`
	Price           float64   `json:"price"`
}

type ServiceList struct {
	Items []ServiceOption `json:"items"`
	Total int64           `json:"total"`
}

type RetouchConfigSummary struct {
	ID               uuid.UUID           `json:"id"`
	ServiceID        uuid.UUID           `json:"serviceId"`
	ServiceName      *string             `json:"serviceName"`
	FrequencyType    model.FrequencyType `json:"frequencyType"`
	FrequencyValue   int                 `json:"frequencyValue"`
	IsActive         bool                `json:"isActive"`
	IsDefault        bool                `json:"isDefault"`
	BusinessDaysOnly bool                `json:"businessDaysOnly"`
}

type UpsertRetouchConfigInput struct {
	TenantID         uuid.UUID
	ServiceID        uuid.UUID
	FrequencyType    string
	FrequencyValue   int
	BusinessDaysOnly bool
	IsDefault        bool
}

type RetouchService struct {
	tenants   repository.TenantRepository
	customers repository.CustomerRepository
	visits    repository.VisitRepository
	services  repository.ServiceRepository
	configs   repository.RetouchConfigRepository
	holidays  repository.HolidayRepository

	log *zap.Logger
	now func() time.Time
}

func NewRetouchService(
	tenants repository.TenantRepository,
	customers repository.CustomerRepository,
	visits repository.VisitRepository,
	services repository.ServiceRepository,
	configs repository.RetouchConfigRepository,
	holidays repository.HolidayRepository,
	log *zap.Logger,
) *RetouchService {
	return &RetouchService{
		tenants:   tenants,
		customers: customers,
		visits:    visits,
		services:  services,
		configs:   configs,
		holidays:  holidays,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// WithClock подменяет источник текущего времени (для тестов).
func (s *RetouchService) WithClock(now func() time.Time) *RetouchService {
	s.now = now
	return s
}

// CalculateNextRetouchDate считает дату следующей ретуши, ничего не записывая.
// При serviceID == nil берётся услуга ретуши, сохранённая у клиента.
func (s *RetouchService) CalculateNextRetouchDate(
	ctx context.Context,
	tenantID, customerID uuid.UUID,
	serviceID *uuid.UUID,
) (time.Time, error) {
	customer, err := s.customers.GetByID(ctx, tenantID, customerID)
	if err != nil {
		if isNotFound(err) {
			return time.Time{}, apperr.NotFound("customer", fmt.Sprintf("Customer with ID %s not found", customerID))
		}
		return time.Time{}, dbFailure(s.log, opCalculateRetouch, err, zap.Stringer("customer_id", customerID))
	}

	target := serviceID
	if target == nil || *target == uuid.Nil {
		target = customer.RetouchServiceID
	}
	if target == nil || *target == uuid.Nil {
		return time.Time{}, apperr.Validation("serviceId", "No service specified for retouch calculation")
	}

	cfg, err := s.configs.GetActive(ctx, tenantID, *target)
	if err != nil {
		if isNotFound(err) {
			return time.Time{}, apperr.NotFound("retouch_config",
				fmt.Sprintf("No active retouch configuration found for service %s", *target))
		}
		return time.Time{}, dbFailure(s.log, opCalculateRetouch, err, zap.Stringer("service_id", *target))
	}

	visit, err := s.visits.LastCompleted(ctx, tenantID, customerID)
	if err != nil {
		if isNotFound(err) {
			return time.Time{}, apperr.Validation("visits", "Customer has no completed visits to calculate retouch date from")
		}
		return time.Time{}, dbFailure(s.log, opCalculateRetouch, err, zap.Stringer("customer_id", customerID))
	}

	holidays, err := s.holidays.ListAffectingRetouch(ctx, tenantID)
	if err != nil {
		return time.Time{}, dbFailure(s.log, opCalculateRetouch, err, zap.Stringer("tenant_id", tenantID))
	}

	loc, err := s.tenantLocation(ctx, tenantID)
	if err != nil {
		return time.Time{}, dbFailure(s.log, opCalculateRetouch, err, zap.Stringer("tenant_id", tenantID))
	}

	set := make(calendar.HolidaySet, len(holidays))
	for _, h := range holidays {
		// DATE без времени: ключ берём как есть, без перевода в зону тенанта
		set.Add(time.Time(h.Date))
	}

	rule := calendar.RetouchRule{
		FrequencyType:    calendar.FrequencyType(cfg.FrequencyType),
		FrequencyValue:   cfg.FrequencyValue,
		BusinessDaysOnly: cfg.BusinessDaysOnly,
	}
	next, err := calendar.NextRetouchDate(visit.VisitDate.In(loc), rule, set)
	if err != nil {
		if errors.Is(err, calendar.ErrUnknownFrequency) {
			s.log.Error("retouch config has unknown frequency type",
				zap.Stringer("config_id", cfg.ID),
				zap.String("frequency_type", string(cfg.FrequencyType)),
			)
			return time.Time{}, apperr.Configuration("frequency_type",
				fmt.Sprintf("Invalid frequency type: %s", cfg.FrequencyType))
		}
		return time.Time{}, err
	}
	return next, nil
}

// UpdateCustomerRetouchDate считает дату и сохраняет её у клиента.
func (s *RetouchService) UpdateCustomerRetouchDate(
	ctx context.Context,
	tenantID, customerID uuid.UUID,
	serviceID *uuid.UUID,
) (time.Time, error) {
	next, err := s.CalculateNextRetouchDate(ctx, tenantID, customerID, serviceID)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.customers.SetNextRetouchDate(ctx, tenantID, customerID, next); err != nil {
		if isNotFound(err) {
			// клиента удалили между чтением и записью
			return time.Time{}, apperr.NotFound("customer", fmt.Sprintf("Customer with ID %s not found", customerID))
		}
		return time.Time{}, dbFailure(s.log, opUpdateRetouch, err, zap.Stringer("customer_id", customerID))
	}
	return next, nil
}

// GetCustomersByRetouchDate — активные клиенты по возрастанию даты ретуши.
// limit <= 0 означает пустой результат, а не «всё».
func (s *RetouchService) GetCustomersByRetouchDate(
	ctx context.Context,
	tenantID uuid.UUID,
	limit, offset int,
) ([]CustomerRetouchSummary, error) {
	w := calendar.NewWindow(limit, offset)
	if w.Empty() {
		return []CustomerRetouchSummary{}, nil
	}

	customers, err := s.customers.ListByRetouchDate(ctx, tenantID, w.Limit, w.Offset)
	if err != nil {
		return nil, dbFailure(s.log, opListByRetouch, err, zap.Stringer("tenant_id", tenantID))
	}

	names, err := s.serviceNames(ctx, tenantID, customers)
	if err != nil {
		return nil, dbFailure(s.log, opListByRetouch, err, zap.Stringer("tenant_id", tenantID))
	}

	now := s.now()
	out := make([]CustomerRetouchSummary, 0, len(customers))
	for _, c := range customers {
		row := CustomerRetouchSummary{
			ID:               c.ID,
			Name:             c.Name,
			Phone:            c.Phone,
			NextRetouchDate:  c.NextRetouchDate,
			RetouchServiceID: c.RetouchServiceID,
		}
		if c.NextRetouchDate != nil {
			days := utils.DaysUntil(*c.NextRetouchDate, now)
			row.DaysUntilRetouch = &days
		}
		if c.RetouchServiceID != nil {
			if name, ok := names[*c.RetouchServiceID]; ok {
				row.RetouchServiceName = &name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// названия услуг ретуши одной выборкой на страницу
func (s *RetouchService) serviceNames(ctx context.Context, tenantID uuid.UUID, customers []model.Customer) (map[uuid.UUID]string, error) {
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID
	for _, c := range customers {
		if c.RetouchServiceID == nil {
			continue
		}
		if _, dup := seen[*c.RetouchServiceID]; !dup {
			seen[*c.RetouchServiceID] = struct{}{}
			ids = append(ids, *c.RetouchServiceID)
		}
	}

	return s.services.NamesByIDs(ctx, tenantID, ids)
}

// ListServices отдаёт активные услуги тенанта по имени.
func (s *RetouchService) ListServices(ctx context.Context, tenantID uuid.UUID, limit, offset int) (ServiceList, error) {
	services, total, err := s.services.List(ctx, repository.ServiceFilter{
		TenantID:   tenantID,
		OnlyActive: true,
		Window:     calendar.NewWindow(limit, offset),
	})
	if err != nil {
		return ServiceList{}, dbFailure(s.log, opListServices, err, zap.Stringer("tenant_id", tenantID))
	}

	out := ServiceList{Items: make([]ServiceOption, 0, len(services)), Total: total}
	for _, svc := range services {
		out.Items = append(out.Items, ServiceOption{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	return out, nil
}

// GetServiceRetouchConfigs: конфигурации тенанта с названием услуги.
func (s *RetouchService) GetServiceRetouchConfigs(ctx context.Context, tenantID uuid.UUID) ([]RetouchConfigSummary, error) {
	rows, err := s.configs.ListWithServiceName(ctx, tenantID)
	if err != nil {
		return nil, dbFailure(s.log, opListConfigs, err, zap.Stringer("tenant_id", tenantID))
	}

	out := make([]RetouchConfigSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, RetouchConfigSummary(r))
	}
	return out, nil
}

// UpsertServiceRetouchConfig создаёт или обновляет правило для услуги.
// Снятие прежнего default и сама запись идут одной транзакцией.
func (s *RetouchService) UpsertServiceRetouchConfig(ctx context.Context, in UpsertRetouchConfigInput) error {
	freq := calendar.FrequencyType(in.FrequencyType)
	if !freq.Valid() {
		return apperr.Validation("frequencyType", "frequencyType must be one of days, weeks, months")
	}
	if in.FrequencyValue <= 0 {
		return apperr.Validation("frequencyValue", "frequencyValue must be a positive integer")
	}

	if _, err := s.services.GetByID(ctx, in.TenantID, in.ServiceID); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("service",
				fmt.Sprintf("Service with ID %s not found for tenant %s", in.ServiceID, in.TenantID))
		}
		return dbFailure(s.log, opUpsertConfig, err, zap.Stringer("service_id", in.ServiceID))
	}

	cfg := &model.ServiceRetouchConfig{
		TenantID:         in.TenantID,
		ServiceID:        in.ServiceID,
		FrequencyType:    model.FrequencyType(freq),
		FrequencyValue:   in.FrequencyValue,
		IsActive:         true,
		IsDefault:        in.IsDefault,
		BusinessDaysOnly: in.BusinessDaysOnly,
		Metadata:         datatypes.JSON("{}"),
	}
	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return dbFailure(s.log, opUpsertConfig, err, zap.Stringer("service_id", in.ServiceID))
	}
	return nil
}

// SetServiceRetouchConfigActive включает или выключает правило.
// Выключенное правило перестаёт быть правилом по умолчанию.
func (s *RetouchService) SetServiceRetouchConfigActive(ctx context.Context, tenantID, serviceID uuid.UUID, active bool) error {
	if err := s.configs.SetActive(ctx, tenantID, serviceID, active); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("retouch_config",
				fmt.Sprintf("No retouch configuration found for service %s", serviceID))
		}
		return dbFailure(s.log, opSetConfigActive, err, zap.Stringer("service_id", serviceID))
	}
	return nil
}

// tenantLocation — часовой пояс тенанта; пустой или неизвестный даёт UTC.
func (s *RetouchService) tenantLocation(ctx context.Context, tenantID uuid.UUID) (*time.Location, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if isNotFound(err) {
			return time.UTC, nil
		}
		return nil, err
	}
	loc, ok := utils.LoadLocation(tenant.Timezone)
	if !ok {
		s.log.Warn("tenant timezone is not valid, falling back to UTC",
			zap.Stringer("tenant_id", tenantID),
			zap.String("timezone", tenant.Timezone),
		)
	}
	return loc, nil
}
