package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var _ employee.Service = (*fakeEmployeeService)(nil)

type fakeEmployeeService struct {
	GetEmployeeFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetEmployeeFn(ctx, id)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_GetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakeEmployeeService{
		GetEmployeeFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			assert.Equal(t, employeeID, id)
			return employee.EmployeeResponse{ID: id, FullName: "Jane Doe"}, nil
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/me", nil)
	c.Set("employee_id", employeeID)

	h.GetMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), "Jane Doe")
}

func TestEmployeeHandler_GetById_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeEmployeeService{
		GetEmployeeFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	h := employee.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/x", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
