package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxClaims = "claims"

// Claims — полезная нагрузка токена панели управления.
type Claims struct {
	TenantSlug string `json:"tenantSlug,omitempty"`
	Email      string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken подписывает HS256-токен; используется CLI и тестами.
func IssueToken(secret []byte, subject, tenantSlug, email string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := Claims{
		TenantSlug: tenantSlug,
		Email:      strings.ToLower(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// authMiddleware проверяет Bearer-токен и кладёт Claims в контекст.
// С пустым секретом любой токен отклоняется: HS256 с пустым ключом подписывает кто угодно.
func authMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			fail(c, http.StatusInternalServerError, "authentication is not configured")
			return
		}

		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			fail(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ctxClaims, claims)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return &Claims{}
}

// adminOnly пропускает только e-mail из списка администраторов.
func adminOnly(adminEmails []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return func(c *gin.Context) {
		email := strings.ToLower(claimsFrom(c).Email)
		if _, ok := allowed[email]; email == "" || !ok {
			fail(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}
