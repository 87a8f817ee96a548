package utils

// 统一的业务错误分类-每类固定HTTP状态码与稳定的code
import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	Service string `json:"service,omitempty"` // 外部服务错误时携带厂商名
}

func (e *AppError) Error() string { return e.Message }

func NewValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg, Code: "VALIDATION_ERROR", Type: "validation_error"}
}

func NewAuthenticationError(msg string) *AppError {
	if msg == "" {
		msg = "Authentication required"
	}
	return &AppError{Status: http.StatusUnauthorized, Message: msg, Code: "AUTHENTICATION_ERROR", Type: "authentication_error"}
}

func NewAuthorizationError(msg string) *AppError {
	if msg == "" {
		msg = "Insufficient permissions"
	}
	return &AppError{Status: http.StatusForbidden, Message: msg, Code: "AUTHORIZATION_ERROR", Type: "authorization_error"}
}

func NewNotFoundError(msg string) *AppError {
	if msg == "" {
		msg = "Resource not found"
	}
	return &AppError{Status: http.StatusNotFound, Message: msg, Code: "NOT_FOUND", Type: "not_found_error"}
}

func NewRateLimitError(msg string) *AppError {
	if msg == "" {
		msg = "Rate limit exceeded"
	}
	return &AppError{Status: http.StatusTooManyRequests, Message: msg, Code: "RATE_LIMIT_EXCEEDED", Type: "rate_limit_error"}
}

func NewExternalServiceError(msg string, service string) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Message: msg, Code: "EXTERNAL_SERVICE_ERROR", Type: "external_service_error", Service: service}
}

// RespondError 将错误翻译成统一的JSON返回体
// 已知的AppError按其状态码返回，数据库错误按约定翻译，其余一律500
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, appErr)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, &AppError{
			Message: "Record not found", Code: "RECORD_NOT_FOUND", Type: "database_error",
		})
		return
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // 唯一约束冲突
			c.JSON(http.StatusConflict, &AppError{
				Message: "A record with this information already exists", Code: "DUPLICATE_RECORD", Type: "database_error",
			})
		case 1452: // 外键约束
			c.JSON(http.StatusBadRequest, &AppError{
				Message: "Foreign key constraint failed", Code: "FOREIGN_KEY_ERROR", Type: "database_error",
			})
		default:
			c.JSON(http.StatusInternalServerError, &AppError{
				Message: "Database operation failed", Code: "DATABASE_ERROR", Type: "database_error",
			})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, &AppError{
		Message: "Internal server error", Code: "INTERNAL_SERVER_ERROR", Type: "server_error",
	})
}
