package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-attendance/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeProfileKeyPrefix = "employees:profile:"
	profileCacheTTL          = 5 * time.Minute
)

func GetEmployeeProfileKey(id string) string {
	return EmployeeProfileKeyPrefix + id
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetEmployee reads the profile through a short-lived Redis cache. Concurrent
// misses for the same id share one database read.
func (s *service) GetEmployee(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	cacheKey := GetEmployeeProfileKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("employee cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(*empl)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, profileCacheTTL).Err(); err != nil {
					s.logger.Warn("employee cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Debug("get employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return v.(EmployeeResponse), nil
}
