package response

import (
	"campus-event-system/internal/global/logger"
	"campus-event-system/internal/global/sentry"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagination 列表接口统一的分页块
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := (total + int64(limit) - 1) / int64(limit)
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ResponseBody 统一响应体
type ResponseBody struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
	Origin     string      `json:"origin,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Success 返回 200 成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Success: true}
	if len(data) > 0 {
		body.Data = data[0]
	}
	if len(data) > 1 {
		if msg, ok := data[1].(string); ok {
			body.Message = msg
		}
	}
	c.JSON(http.StatusOK, body)
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, ResponseBody{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Page 返回带分页块的列表响应
func Page(c *gin.Context, data any, p *Pagination) {
	c.JSON(http.StatusOK, ResponseBody{
		Success:    true,
		Data:       data,
		Pagination: p,
	})
}

// Fail 返回失败响应，HTTP 状态码由错误目录决定
func Fail(c *gin.Context, e *Error) {
	c.Set(ErrorContextKey, e)

	body := ResponseBody{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
	}
	// origin 仅在 debug 模式下向前端暴露
	if gin.Mode() == gin.DebugMode {
		body.Origin = e.Origin
	}
	c.JSON(e.Status, body)

	// 5xx 上报 Sentry，业务错误不上报
	sentry.CaptureException(c, e)
}

// Recovery 捕获 handler panic，上报 Sentry 并返回 INTERNAL_ERROR
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		logger.New("Recovery").Error("请求处理 panic", "error", err, "path", c.Request.URL.Path)
		Fail(c, ErrInternal.WithOrigin(err))
		c.Abort()
	}
}
