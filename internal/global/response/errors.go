package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"

// Error 自定义错误类型：对外的符号错误码是接口契约，HTTP 状态码与之配对，
// 内部保留原始错误链和堆栈供 Sentry 上报
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Origin  string `json:"origin,omitempty"`
	// cause 保存原始错误，用于 Unwrap() 方法和 Sentry 堆栈提取
	cause error
	// stack 保存堆栈信息，用于 Sentry 堆栈提取
	stack pkgerrors.StackTrace
}

func newError(status int, code, msg string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%s, msg:%s", e.Code, e.Message)
}

// HTTPStatus 返回对应的 HTTP 状态码，实现 sentry.CodedError 接口
func (e *Error) HTTPStatus() int {
	return e.Status
}

// Unwrap 返回原始错误，支持 errors.Unwrap() 和 Sentry 错误链提取
func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace 返回堆栈跟踪，实现 pkg/errors 的 stackTracer 接口
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if e.cause != nil {
		type stackTracer interface {
			StackTrace() pkgerrors.StackTrace
		}
		if st, ok := e.cause.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin 附带用于调试的原始错误，同时保留错误链供 Sentry 提取堆栈
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}

	wrappedErr := ensureStack(err)

	newErr := &Error{
		Status:  e.Status,
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%v", wrappedErr),
		cause:   wrappedErr,
	}

	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if st, ok := wrappedErr.(stackTracer); ok {
		newErr.stack = st.StackTrace()
	}

	return newErr
}

// WithTips 在错误消息后附加额外提示
func (e *Error) WithTips(details ...string) *Error {
	return &Error{
		Status:  e.Status,
		Code:    e.Code,
		Message: e.Message + " " + fmt.Sprintf("%v", details),
		cause:   e.cause,
		stack:   e.stack,
	}
}

// ensureStack 确保错误带有堆栈信息
func ensureStack(err error) error {
	if err == nil {
		return nil
	}
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}

// Coerce 将任意 error 归一为 *Error，非业务错误按存储层错误处理
func Coerce(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrDatabase.WithOrigin(err)
}

// 错误目录：code 字段是前端依赖的接口契约，改动会破坏客户端兼容性
var (
	// 400 参数校验
	ErrInvalidRequest    = newError(400, "INVALID_REQUEST", "Invalid request payload")
	ErrMissingFields     = newError(400, "MISSING_REQUIRED_FIELDS", "Missing required fields")
	ErrInvalidStatus     = newError(400, "INVALID_STATUS", "Invalid status")
	ErrInvalidEventType  = newError(400, "INVALID_EVENT_TYPE", "Invalid event type")
	ErrInvalidDateFormat = newError(400, "INVALID_DATE_FORMAT", "Invalid date format. Use ISO 8601 format")
	ErrInvalidDateRange  = newError(400, "INVALID_DATE_RANGE", "End date must be after start date")
	ErrInvalidRating     = newError(400, "INVALID_RATING", "Rating must be an integer between 1 and 5")
	ErrInvalidEmail      = newError(400, "INVALID_EMAIL_FORMAT", "Invalid email format")
	ErrNoFieldsToUpdate  = newError(400, "NO_FIELDS_TO_UPDATE", "No fields to update")
	ErrConstraint        = newError(400, "CONSTRAINT_VIOLATION", "Invalid reference or constraint violation")

	// 400 工作流规则
	ErrEventNotActive       = newError(400, "EVENT_NOT_ACTIVE", "Event is not active for registration")
	ErrRegistrationClosed   = newError(400, "REGISTRATION_CLOSED", "Registration closed - event has already started")
	ErrEventFull            = newError(400, "EVENT_FULL", "Event is at full capacity")
	ErrStudentNotRegistered = newError(400, "STUDENT_NOT_REGISTERED", "Student is not registered for this event")
	ErrStudentNotAttended   = newError(400, "STUDENT_NOT_ATTENDED", "Student must attend the event to provide feedback")

	// 404
	ErrCollegeNotFound      = newError(404, "COLLEGE_NOT_FOUND", "College not found")
	ErrStudentNotFound      = newError(404, "STUDENT_NOT_FOUND", "Student not found")
	ErrEventNotFound        = newError(404, "EVENT_NOT_FOUND", "Event not found")
	ErrRegistrationNotFound = newError(404, "REGISTRATION_NOT_FOUND", "Registration not found")
	ErrAttendanceNotFound   = newError(404, "ATTENDANCE_NOT_FOUND", "Attendance record not found")
	ErrFeedbackNotFound     = newError(404, "FEEDBACK_NOT_FOUND", "Feedback record not found")

	// 409 重复
	ErrAlreadyRegistered        = newError(409, "ALREADY_REGISTERED", "Student is already registered for this event")
	ErrAttendanceAlreadyMarked  = newError(409, "ATTENDANCE_ALREADY_MARKED", "Attendance already marked for this student and event")
	ErrFeedbackAlreadySubmitted = newError(409, "FEEDBACK_ALREADY_SUBMITTED", "Feedback already submitted for this event")
	ErrDuplicateStudentID       = newError(409, "DUPLICATE_STUDENT_ID", "Student with this ID already exists in this college")
	ErrDuplicateCollege         = newError(409, "DUPLICATE_COLLEGE", "College with this name or code already exists")

	// 500
	ErrDatabase = newError(500, "DATABASE_ERROR", "Database operation failed")
	ErrInternal = newError(500, "INTERNAL_ERROR", "Internal server error")
)
