package attendance

import (
	"os"
	"strconv"
	"testing"
	"time"

	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"
	"campus-event-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleAttendance{}).Init()
	os.Exit(m.Run())
}

type fixture struct {
	student model.Student
	event   model.Event
}

func seed(t *testing.T) fixture {
	college := model.College{Name: "Tech University", Code: "TU"}
	require.NoError(t, database.DB.Create(&college).Error)

	student := model.Student{CollegeID: college.ID, StudentID: "TU001", Name: "Alice Johnson", Email: "alice@tu.edu"}
	require.NoError(t, database.DB.Create(&student).Error)

	event := model.Event{
		CollegeID: college.ID,
		Title:     "Robotics Workshop",
		EventType: model.EventTypeWorkshop,
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(32 * time.Hour),
		Status:    model.EventStatusActive,
	}
	require.NoError(t, database.DB.Create(&event).Error)
	return fixture{student: student, event: event}
}

func register(t *testing.T, f fixture) model.Registration {
	reg := model.Registration{EventID: f.event.ID, StudentID: f.student.ID, Status: model.RegistrationStatusRegistered}
	require.NoError(t, database.DB.Create(&reg).Error)
	return reg
}

func TestMarkAttendanceRequiresRegistration(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)

	resp := test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID})
	test.ErrorEqual(t, response.ErrStudentNotRegistered, resp)

	// cancelled 状态的报名不算数
	reg := register(t, f)
	reg.Status = model.RegistrationStatusCancelled
	require.NoError(t, database.DB.Save(&reg).Error)

	resp = test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID})
	test.ErrorEqual(t, response.ErrStudentNotRegistered, resp)
}

func TestMarkAttendance(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	register(t, f)

	resp := test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID})
	test.NoError(t, resp)
	id := test.CreatedID(t, resp)

	// status 缺省 present
	var att model.Attendance
	require.NoError(t, database.DB.First(&att, id).Error)
	require.Equal(t, model.AttendanceStatusPresent, att.Status)

	resp = test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID, Status: "absent"})
	test.ErrorEqual(t, response.ErrAttendanceAlreadyMarked, resp)
}

// 重复检查通过之后、INSERT 之前被并发请求抢先签到，
// 唯一索引兜底，返回已签到而不是 500
func TestMarkAttendanceDuplicateBackstop(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	register(t, f)

	injected := false
	require.NoError(t, database.DB.Callback().Create().Before("gorm:create").Register("rival_attendance", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "attendance" {
			return
		}
		injected = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO attendance (event_id, student_id, status) VALUES (?, ?, 'present')",
			f.event.ID, f.student.ID).Error)
	}))
	defer func() {
		require.NoError(t, database.DB.Callback().Create().Remove("rival_attendance"))
	}()

	resp := test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID})
	test.ErrorEqual(t, response.ErrAttendanceAlreadyMarked, resp)
	require.True(t, injected)
}

func TestMarkAttendanceInvalidStatus(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	register(t, f)

	resp := test.DoRequest(t, MarkAttendance, AttendanceCreateReq{EventID: f.event.ID, StudentID: f.student.ID, Status: "late"})
	test.ErrorEqual(t, response.ErrInvalidStatus, resp)
}

// 更新签到状态不回查报名记录，报名被取消后仍然放行
func TestUpdateAttendanceSkipsRegistrationCheck(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	reg := register(t, f)

	att := model.Attendance{EventID: f.event.ID, StudentID: f.student.ID, Status: model.AttendanceStatusPresent}
	require.NoError(t, database.DB.Create(&att).Error)

	require.NoError(t, database.DB.Delete(&reg).Error)

	resp := test.DoRequest(t, UpdateAttendance, AttendanceUpdateReq{Status: "absent"},
		gin.Param{Key: "id", Value: strconv.Itoa(int(att.ID))})
	test.NoError(t, resp)

	var got model.Attendance
	require.NoError(t, database.DB.First(&got, att.ID).Error)
	require.Equal(t, model.AttendanceStatusAbsent, got.Status)
}

func TestUpdateAttendanceNotFound(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, UpdateAttendance, AttendanceUpdateReq{Status: "absent"},
		gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrAttendanceNotFound, resp)
}

func TestDeleteAttendance(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	register(t, f)

	att := model.Attendance{EventID: f.event.ID, StudentID: f.student.ID, Status: model.AttendanceStatusPresent}
	require.NoError(t, database.DB.Create(&att).Error)

	resp := test.DoRequest(t, DeleteAttendance, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(att.ID))})
	test.NoError(t, resp)

	resp = test.DoRequest(t, DeleteAttendance, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(att.ID))})
	test.ErrorEqual(t, response.ErrAttendanceNotFound, resp)
}
