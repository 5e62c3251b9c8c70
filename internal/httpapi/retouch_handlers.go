package httpapi

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/calendar"
	"github.com/Leganyst/saas-store/internal/service"
	"github.com/Leganyst/saas-store/internal/utils"
)

type retouchDateResponse struct {
	CustomerID      uuid.UUID `json:"customerId"`
	NextRetouchDate time.Time `json:"nextRetouchDate"`
	Date            string    `json:"date"`
}

type updateRetouchRequest struct {
	ServiceID *uuid.UUID `json:"serviceId"`
}

type upsertConfigRequest struct {
	ServiceID        uuid.UUID `json:"serviceId"`
	FrequencyType    string    `json:"frequencyType"`
	FrequencyValue   int       `json:"frequencyValue"`
	BusinessDaysOnly bool      `json:"businessDaysOnly"`
	IsDefault        bool      `json:"isDefault"`
}

type configActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func serviceUpsertInput(tenantID uuid.UUID, req upsertConfigRequest) service.UpsertRetouchConfigInput {
	return service.UpsertRetouchConfigInput{
		TenantID:         tenantID,
		ServiceID:        req.ServiceID,
		FrequencyType:    req.FrequencyType,
		FrequencyValue:   req.FrequencyValue,
		BusinessDaysOnly: req.BusinessDaysOnly,
		IsDefault:        req.IsDefault,
	}
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(field, field+" must be a valid UUID")
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(key, key+" must be an integer")
	}
	return v, nil
}

func (s *Server) listRetouchCustomers(c *gin.Context) {
	limit, err := queryInt(c, "limit", calendar.DefaultPageLimit)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		writeError(c, s.log, err)
		return
	}

	tenant := tenantFrom(c)
	items, err := s.retouch.GetCustomersByRetouchDate(c.Request.Context(), tenant.ID, limit, offset)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, calendar.NewPage(items, calendar.NewWindow(limit, offset)))
}

func (s *Server) calculateRetouch(c *gin.Context) {
	customerID, err := parseUUID(c.Param("id"), "customerId")
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	var serviceID *uuid.UUID
	if raw := c.Query("serviceId"); raw != "" {
		id, err := parseUUID(raw, "serviceId")
		if err != nil {
			writeError(c, s.log, err)
			return
		}
		serviceID = &id
	}

	next, err := s.retouch.CalculateNextRetouchDate(c.Request.Context(), tenantFrom(c).ID, customerID, serviceID)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, retouchDateResponse{CustomerID: customerID, NextRetouchDate: next, Date: utils.FormatISODate(next)})
}

func (s *Server) updateRetouch(c *gin.Context) {
	customerID, err := parseUUID(c.Param("id"), "customerId")
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	// тело необязательно; длина может быть неизвестна (chunked), поэтому пустоту определяет io.EOF
	var req updateRetouchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, s.log, apperr.Validation("body", "invalid JSON body"))
		return
	}

	next, err := s.retouch.UpdateCustomerRetouchDate(c.Request.Context(), tenantFrom(c).ID, customerID, req.ServiceID)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, retouchDateResponse{CustomerID: customerID, NextRetouchDate: next, Date: utils.FormatISODate(next)})
}

func (s *Server) listServices(c *gin.Context) {
	limit, err := queryInt(c, "limit", calendar.DefaultPageLimit)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		writeError(c, s.log, err)
		return
	}

	services, err := s.retouch.ListServices(c.Request.Context(), tenantFrom(c).ID, limit, offset)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, services)
}

func (s *Server) listRetouchConfigs(c *gin.Context) {
	configs, err := s.retouch.GetServiceRetouchConfigs(c.Request.Context(), tenantFrom(c).ID)
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, configs)
}

func (s *Server) upsertRetouchConfig(c *gin.Context) {
	var req upsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, s.log, apperr.Validation("body", "invalid JSON body"))
		return
	}
	if req.ServiceID == uuid.Nil {
		writeError(c, s.log, apperr.Validation("serviceId", "serviceId is required"))
		return
	}

	err := s.retouch.UpsertServiceRetouchConfig(c.Request.Context(), serviceUpsertInput(tenantFrom(c).ID, req))
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, gin.H{"serviceId": req.ServiceID})
}

func (s *Server) setRetouchConfigActive(c *gin.Context) {
	serviceID, err := parseUUID(c.Param("serviceId"), "serviceId")
	if err != nil {
		writeError(c, s.log, err)
		return
	}
	var req configActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		writeError(c, s.log, apperr.Validation("isActive", "isActive is required"))
		return
	}

	if err := s.retouch.SetServiceRetouchConfigActive(c.Request.Context(), tenantFrom(c).ID, serviceID, *req.IsActive); err != nil {
		writeError(c, s.log, err)
		return
	}
	ok(c, gin.H{"serviceId": serviceID, "isActive": *req.IsActive})
}
