package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/notify"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/utils"
)

const opSendReminders = "send_retouch_reminders"

// ReminderService напоминает клиентам о ретуши за leadDays дней.
type ReminderService struct {
	tenants   repository.TenantRepository
	customers repository.CustomerRepository
	notifier  notify.Notifier
	leadDays  int
	log       *zap.Logger
	now       func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewReminderService(
	tenants repository.TenantRepository,
	customers repository.CustomerRepository,
	notifier notify.Notifier,
	leadDays int,
	log *zap.Logger,
) *ReminderService {
	return &ReminderService{
		tenants:   tenants,
		customers: customers,
		notifier:  notifier,
		leadDays:  leadDays,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// RunOnce обходит активных тенантов и возвращает число отправленных сообщений.
// Ошибка одного тенанта или клиента не останавливает остальных.
func (s *ReminderService) RunOnce(ctx context.Context) (int, error) {
	tenants, err := s.tenants.ListActive(ctx)
	if err != nil {
		return 0, dbFailure(s.log, opSendReminders, err)
	}

	sent := 0
	for _, tenant := range tenants {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		n, err := s.remindTenant(ctx, tenant)
		if err != nil {
			s.log.Error("tenant reminders failed",
				zap.Stringer("tenant_id", tenant.ID),
				zap.String("slug", tenant.Slug),
				zap.Error(err),
			)
		}
		sent += n
	}

	s.log.Info("retouch reminders processed", zap.Int("tenants", len(tenants)), zap.Int("sent", sent))
	return sent, nil
}

func (s *ReminderService) remindTenant(ctx context.Context, tenant model.Tenant) (int, error) {
	loc, ok := utils.LoadLocation(tenant.Timezone)
	if !ok {
		s.log.Warn("tenant timezone is not valid, falling back to UTC",
			zap.Stringer("tenant_id", tenant.ID),
			zap.String("timezone", tenant.Timezone),
		)
	}

	// сутки «сегодня + leadDays» в зоне тенанта
	from := utils.DateOnly(s.now().In(loc)).AddDate(0, 0, s.leadDays)
	to := from.AddDate(0, 0, 1)

	customers, err := s.customers.ListDueBetween(ctx, tenant.ID, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range customers {
		msg := notify.Message{
			To:   c.Phone,
			Body: reminderText(tenant.Name, c.Name, *c.NextRetouchDate, loc),
		}
		receipt, err := s.notifier.Send(ctx, msg)
		if err != nil {
			s.log.Warn("retouch reminder not sent",
				zap.Stringer("tenant_id", tenant.ID),
				zap.Stringer("customer_id", c.ID),
				zap.Error(err),
			)
			continue
		}
		s.log.Debug("retouch reminder sent",
			zap.Stringer("customer_id", c.ID),
			zap.String("channel", string(receipt.Channel)),
			zap.String("sid", receipt.ID),
		)
		sent++
	}
	return sent, nil
}

func reminderText(tenantName, customerName string, date time.Time, loc *time.Location) string {
	return fmt.Sprintf("Hola %s, te esperamos en %s para tu retoque el %s. ¡Agenda tu cita!",
		customerName, tenantName, utils.FormatRetouchDate(date, loc))
}

// Start запускает RunOnce по cron-расписанию (5 полей, «0 9 * * *»).
func (s *ReminderService) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("reminder scheduler already started")
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.log.Error("scheduled reminders failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("reminder scheduler started", zap.String("schedule", spec))
	return nil
}

// Stop останавливает планировщик и ждёт текущий запуск.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
}
