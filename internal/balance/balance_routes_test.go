package balance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/balance"
	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// grants mirrors the seeded role_permissions rows the balance routes rely on.
type grants map[string][]string

func (g grants) Enforce(role, resource, action string) (bool, error) {
	for _, p := range g[role] {
		if p == resource+":"+action {
			return true, nil
		}
	}
	return false, nil
}

func newBalanceRouter(role, employeeID string, svc balance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Set("employee_id", employeeID)
		c.Next()
	})
	perms := grants{
		"staff": {"balance:read_own"},
		"admin": {"balance:read_own", "balance:manage"},
	}
	balance.RegisterRoutes(r.Group("/api/v1"), balance.NewHandler(svc), perms)
	return r
}

func TestBalanceRoutes_ReadOwnPermission(t *testing.T) {
	id := uuid.NewString()
	cases := []struct {
		name   string
		role   string
		path   string
		status int
	}{
		{"staff reads own balance", "staff", "/api/v1/balances/me", http.StatusOK},
		{"admin inherits read_own", "admin", "/api/v1/balances/me", http.StatusOK},
		{"role without read_own is refused", "contractor", "/api/v1/balances/me", http.StatusForbidden},
		{"role without read_own cannot read by id", "contractor", "/api/v1/balances/" + id, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeBalanceService{
				GetBalanceFn: func(ctx context.Context, actor contextutil.Actor, employeeID string) (balance.BalanceResponse, error) {
					if tc.status != http.StatusOK {
						t.Fatal("service must not be called")
					}
					return balance.BalanceResponse{EmployeeID: employeeID}, nil
				},
			}
			r := newBalanceRouter(tc.role, id, svc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}
