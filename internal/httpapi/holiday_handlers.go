package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/service"
)

func (s *Server) listHolidays(c *gin.Context) {
	holidays, err := s.holidays.List(c.Request.Context(), tenantFrom(c).ID)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, holidays)
}

func (s *Server) createHoliday(c *gin.Context) {
	var req service.CreateHolidayInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.log, apperr.Validation("body", "invalid JSON body"))
		return
	}

	holiday, err := s.holidays.Create(c.Request.Context(), tenantFrom(c).ID, req)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, holiday)
}

func (s *Server) deleteHoliday(c *gin.Context) {
	id, err := parseUUID(c.Param("id"), "id")
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	if err := s.holidays.Delete(c.Request.Context(), tenantFrom(c).ID, id); err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, gin.H{"id": id})
}
