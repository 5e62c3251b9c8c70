package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/service"
)

type manageTenantRequest struct {
	ID uuid.UUID `json:"id"`
	service.TenantPatch
}

func (s *Server) updateTenant(c *gin.Context) {
	var req manageTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.log, apperr.Validation("body", "invalid JSON body"))
		return
	}
	if req.ID == uuid.Nil {
		writeError(c, s.log, apperr.Validation("id", "id is required"))
		return
	}

	tenant, err := s.tenants.UpdateTenant(c.Request.Context(), req.ID, req.TenantPatch)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, tenant)
}

func (s *Server) deleteTenant(c *gin.Context) {
	var req struct {
		ID uuid.UUID `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.log, apperr.Validation("body", "invalid JSON body"))
		return
	}
	if req.ID == uuid.Nil {
		writeError(c, s.log, apperr.Validation("id", "id is required"))
		return
	}

	report, err := s.tenants.DeleteTenant(c.Request.Context(), req.ID)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, gin.H{
		"id":          req.ID,
		"deletedRows": report.Total(),
		"tables":      report.Deleted,
		"durationMs":  report.Duration.Milliseconds(),
	})
}
