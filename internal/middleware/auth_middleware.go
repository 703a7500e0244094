package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errTokenNotFound = apperror.ErrUnauthorized.WithMessage("Token not found")
	errInvalidToken  = apperror.ErrUnauthorized.WithMessage("Invalid token")
	errTokenExpired  = apperror.ErrUnauthorized.WithMessage("Token has expired")
)

// AccessClaims are issued by the identity service. Only the fields this
// service relies on are declared.
type AccessClaims struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates an HS256 bearer token (or the access_token
// cookie) and exposes employee_id and role to handlers and services.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, errTokenNotFound)
			return
		}

		if secret == "" {
			abortWith(c, errInvalidToken)
			return
		}

		claims := &AccessClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := errInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = errTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		if claims.EmployeeID == "" {
			abortWith(c, errInvalidToken.WithMessage("Employee ID not found in token"))
			return
		}
		if claims.Role == "" {
			abortWith(c, errInvalidToken.WithMessage("Role not found in token"))
			return
		}

		c.Set("employee_id", claims.EmployeeID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(
			contextutil.WithActor(c.Request.Context(), claims.EmployeeID, claims.Role),
		)

		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperror.AppError) {
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	response.Abort(c, status, appErr.Code, appErr.Message)
}
