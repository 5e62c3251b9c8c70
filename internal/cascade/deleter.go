package cascade

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/db"
	"github.com/Leganyst/saas-store/internal/logger"
)

const operation = "delete_tenant_cascade"

type TableCount struct {
	Phase string `json:"phase"`
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Report — итог успешного удаления.
type Report struct {
	TenantID uuid.UUID     `json:"tenantId"`
	Deleted  []TableCount  `json:"deleted"`
	Duration time.Duration `json:"duration"`
}

func (r Report) Total() int64 {
	var n int64
	for _, c := range r.Deleted {
		n += c.Rows
	}
	return n
}

// Deleter выполняет план удаления в одной транзакции.
type Deleter struct {
	db     *gorm.DB
	plan   Plan
	txOpts *sql.TxOptions
	log    *zap.Logger
}

// NewDeleter проверяет план; txOpts == nil — уровень изоляции драйвера.
func NewDeleter(gdb *gorm.DB, plan Plan, txOpts *sql.TxOptions, log *zap.Logger) (*Deleter, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cascade plan: %w", err)
	}
	return &Deleter{db: gdb, plan: plan, txOpts: txOpts, log: logger.OrNop(log)}, nil
}

// DeleteTenant удаляет тенанта и все зависимые строки: либо всё, либо ничего.
// Проверка существования и системного слага делается вызывающей стороной.
func (d *Deleter) DeleteTenant(ctx context.Context, tenantID uuid.UUID) (Report, error) {
	started := time.Now()
	report := Report{TenantID: tenantID}

	var failed *TableCount
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, phase := range d.plan {
			for _, step := range phase.Steps {
				res := tx.Exec(step.DeleteSQL(), tenantID)
				if res.Error != nil {
					failed = &TableCount{Phase: phase.Name, Table: step.Table}
					return res.Error
				}
				report.Deleted = append(report.Deleted, TableCount{
					Phase: phase.Name,
					Table: step.Table,
					Rows:  res.RowsAffected,
				})
			}
		}

		// последняя строка отчёта: сам тенант
		if last := report.Deleted[len(report.Deleted)-1]; last.Rows == 0 {
			return errTenantGone
		}
		return nil
	}, d.txOpts)

	if errors.Is(err, errTenantGone) {
		return Report{}, apperr.NotFound("tenant", fmt.Sprintf("tenant %s not found", tenantID))
	}
	if err != nil {
		fields := []zap.Field{
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		}
		if code := db.SQLState(err); code != "" {
			fields = append(fields, zap.String("sqlstate", code))
		}
		table := "transaction"
		if failed != nil {
			table = failed.Table
			fields = append(fields, zap.String("phase", failed.Phase), zap.String("table", failed.Table))
		}
		d.log.Error("tenant cascade delete rolled back", fields...)
		return Report{}, apperr.Databasef(operation, err, "failed to delete %s for tenant %s", table, tenantID)
	}

	report.Duration = time.Since(started)
	d.log.Info("tenant deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("rows", report.Total()),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

var errTenantGone = errors.New("tenant row not found")
