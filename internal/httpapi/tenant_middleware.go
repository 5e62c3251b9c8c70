package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/model"
)

const ctxTenant = "tenant"

type TenantResolver interface {
	Resolve(ctx context.Context, slug string) (*model.Tenant, error)
}

// tenantMiddleware находит тенанта по claim tenantSlug.
func tenantMiddleware(resolver TenantResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := claimsFrom(c).TenantSlug
		if slug == "" {
			fail(c, http.StatusForbidden, "token is not bound to a tenant")
			return
		}

		tenant, err := resolver.Resolve(c.Request.Context(), slug)
		if err != nil {
			writeError(c, log, err)
			return
		}
		if !tenant.IsActive() {
			fail(c, http.StatusForbidden, "tenant is not active")
			return
		}

		c.Set(ctxTenant, tenant)
		c.Next()
	}
}

func tenantFrom(c *gin.Context) *model.Tenant {
	v, _ := c.Get(ctxTenant)
	tenant, _ := v.(*model.Tenant)
	return tenant
}
