// Package httpapi — HTTP-интерфейс панели управления.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/service"
)

type Config struct {
	JWTSecret   []byte
	AdminEmails []string
}

type Server struct {
	retouch  *service.RetouchService
	holidays *service.HolidayService
	tenants  *service.TenantService
	resolver TenantResolver
	cfg      Config
	log      *zap.Logger
}

func NewServer(
	retouch *service.RetouchService,
	holidays *service.HolidayService,
	tenants *service.TenantService,
	resolver TenantResolver,
	cfg Config,
	log *zap.Logger,
) *Server {
	return &Server{
		retouch:  retouch,
		holidays: holidays,
		tenants:  tenants,
		resolver: resolver,
		cfg:      cfg,
		log:      logger.OrNop(log),
	}
}

// Router собирает gin.Engine со всеми маршрутами.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		ok(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api", authMiddleware(s.cfg.JWTSecret))

	retouch := api.Group("/retouch", tenantMiddleware(s.resolver, s.log))
	retouch.GET("/customers", s.listRetouchCustomers)
	retouch.GET("/customers/export", s.exportRetouchCustomers)
	retouch.GET("/customers/:id", s.calculateRetouch)
	retouch.POST("/customers/:id", s.updateRetouch)
	retouch.GET("/services", s.listServices)
	retouch.GET("/config", s.listRetouchConfigs)
	retouch.POST("/config", s.upsertRetouchConfig)
	retouch.PATCH("/config/:serviceId", s.setRetouchConfigActive)
	retouch.GET("/holidays", s.listHolidays)
	retouch.POST("/holidays", s.createHoliday)
	retouch.DELETE("/holidays/:id", s.deleteHoliday)

	manage := api.Group("/tenants/manage", adminOnly(s.cfg.AdminEmails))
	manage.PUT("", s.updateTenant)
	manage.DELETE("", s.deleteTenant)

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})
	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
