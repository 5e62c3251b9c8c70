package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/db"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/utils"
)

const (
	opListHolidays  = "list_holidays"
	opCreateHoliday = "create_holiday"
	opDeleteHoliday = "delete_holiday"
)

type CreateHolidayInput struct {
	// YYYY-MM-DD
	Date string `json:"date"`
	Name string `json:"name"`
	// nil — по умолчанию true
	AffectsRetouch *bool  `json:"affectsRetouch"`
	Description    string `json:"description"`
}

type HolidayView struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	Name           string    `json:"name"`
	AffectsRetouch bool      `json:"affectsRetouch"`
	Description    string    `json:"description"`
}

func holidayView(h model.TenantHoliday) HolidayView {
	return HolidayView{
		ID:             h.ID,
		Date:           utils.FormatISODate(time.Time(h.Date)),
		Name:           h.Name,
		AffectsRetouch: h.AffectsRetouch,
		Description:    h.Description,
	}
}

type HolidayService struct {
	holidays repository.HolidayRepository
	log      *zap.Logger
}

func NewHolidayService(holidays repository.HolidayRepository, log *zap.Logger) *HolidayService {
	return &HolidayService{holidays: holidays, log: logger.OrNop(log)}
}

func (s *HolidayService) List(ctx context.Context, tenantID uuid.UUID) ([]HolidayView, error) {
	rows, err := s.holidays.List(ctx, tenantID)
	if err != nil {
		return nil, dbFailure(s.log, opListHolidays, err, zap.Stringer("tenant_id", tenantID))
	}
	out := make([]HolidayView, 0, len(rows))
	for _, h := range rows {
		out = append(out, holidayView(h))
	}
	return out, nil
}

func (s *HolidayService) Create(ctx context.Context, tenantID uuid.UUID, in CreateHolidayInput) (HolidayView, error) {
	date, err := utils.ParseISODate(strings.TrimSpace(in.Date))
	if err != nil {
		return HolidayView{}, apperr.Validation("date", "date must be in YYYY-MM-DD format")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return HolidayView{}, apperr.Validation("name", "name is required")
	}
	affects := true
	if in.AffectsRetouch != nil {
		affects = *in.AffectsRetouch
	}

	h := &model.TenantHoliday{
		TenantID:       tenantID,
		Name:           name,
		Date:           datatypes.Date(date),
		AffectsRetouch: affects,
		Description:    in.Description,
	}
	if err := s.holidays.Create(ctx, h); err != nil {
		if db.IsDuplicate(err) {
			return HolidayView{}, apperr.Validation("date", "holiday already exists")
		}
		return HolidayView{}, dbFailure(s.log, opCreateHoliday, err, zap.Stringer("tenant_id", tenantID))
	}
	return holidayView(*h), nil
}

func (s *HolidayService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.holidays.Delete(ctx, tenantID, id); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("holiday", fmt.Sprintf("Holiday with ID %s not found", id))
		}
		return dbFailure(s.log, opDeleteHoliday, err, zap.Stringer("holiday_id", id))
	}
	return nil
}
