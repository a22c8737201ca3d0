package registration

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
	(&ModuleRegistration{}).Init()
	os.Exit(m.Run())
}

func seedCollege(t *testing.T) model.College {
	college := model.College{Name: "Tech University", Code: "TU"}
	require.NoError(t, database.DB.Create(&college).Error)
	return college
}

func seedStudent(t *testing.T, collegeID uint, number string) model.Student {
	student := model.Student{
		CollegeID: collegeID,
		StudentID: number,
		Name:      "Student " + number,
		Email:     number + "@tu.edu",
	}
	require.NoError(t, database.DB.Create(&student).Error)
	return student
}

func seedEvent(t *testing.T, collegeID uint, max *int, status model.EventStatus, start time.Time) model.Event {
	event := model.Event{
		CollegeID:       collegeID,
		Title:           "Hackathon",
		EventType:       model.EventTypeHackathon,
		StartDate:       start,
		EndDate:         start.Add(48 * time.Hour),
		MaxParticipants: max,
		Status:          status,
	}
	require.NoError(t, database.DB.Create(&event).Error)
	return event
}

func TestCreateRegistration(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{
		EventID:   event.ID,
		StudentID: student.ID,
	})
	test.NoError(t, resp)
	require.NotZero(t, test.CreatedID(t, resp))

	var count int64
	require.NoError(t, database.DB.Model(&model.Registration{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// 容量为 1：X 报上，Y 满员被拒，X 取消后 Y 才能报上
func TestCapacityAdmission(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	studentX := seedStudent(t, college.ID, "TU001")
	studentY := seedStudent(t, college.ID, "TU002")
	max := 1
	event := seedEvent(t, college.ID, &max, model.EventStatusActive, time.Now().Add(24*time.Hour))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: studentX.ID})
	test.NoError(t, resp)
	regID := test.CreatedID(t, resp)

	resp = test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: studentY.ID})
	test.ErrorEqual(t, response.ErrEventFull, resp)

	resp = test.DoRequest(t, DeleteRegistration, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(regID))})
	test.NoError(t, resp)

	resp = test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: studentY.ID})
	test.NoError(t, resp)
}

// start_date 已过即关闭，容量和状态都不影响这个结论
func TestRegistrationClosed(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(-time.Minute))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID})
	test.ErrorEqual(t, response.ErrRegistrationClosed, resp)
}

func TestEventNotActive(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusCancelled, time.Now().Add(24*time.Hour))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID})
	test.ErrorEqual(t, response.ErrEventNotActive, resp)
}

func TestAlreadyRegistered(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID})
	test.NoError(t, resp)

	resp = test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID})
	test.ErrorEqual(t, response.ErrAlreadyRegistered, resp)
}

// (event_id, student_id) 唯一索引被 TranslateError 翻译成 ErrDuplicatedKey
func TestRegistrationUniqueIndex(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	require.NoError(t, database.DB.Create(&model.Registration{EventID: event.ID, StudentID: student.ID}).Error)
	err := database.DB.Create(&model.Registration{EventID: event.ID, StudentID: student.ID}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// 重复检查通过之后、INSERT 之前被并发请求抢先写入同一对，
// 唯一索引兜底，返回已报名而不是 500
func TestRegisterDuplicateBackstop(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	// 用同一连接在检查和插入的窗口里先写入竞争行
	injected := false
	require.NoError(t, database.DB.Callback().Create().Before("gorm:create").Register("rival_registration", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "registration" {
			return
		}
		injected = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO registration (event_id, student_id, status) VALUES (?, ?, 'registered')",
			event.ID, student.ID).Error)
	}))
	defer func() {
		require.NoError(t, database.DB.Callback().Create().Remove("rival_registration"))
	}()

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID})
	test.ErrorEqual(t, response.ErrAlreadyRegistered, resp)
	require.True(t, injected)

	// 无论哪边先到，这一对最终不会落下两条
	var count int64
	require.NoError(t, database.DB.Model(&model.Registration{}).
		Where("event_id = ? AND student_id = ?", event.ID, student.ID).Count(&count).Error)
	require.LessOrEqual(t, count, int64(1))
}

func TestRegisterMissingReferences(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	resp := test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID + 100, StudentID: student.ID})
	test.ErrorEqual(t, response.ErrEventNotFound, resp)

	resp = test.DoRequest(t, CreateRegistration, RegistrationCreateReq{EventID: event.ID, StudentID: student.ID + 100})
	test.ErrorEqual(t, response.ErrStudentNotFound, resp)
}

func TestUpdateRegistrationStatus(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	student := seedStudent(t, college.ID, "TU001")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	reg := model.Registration{EventID: event.ID, StudentID: student.ID, Status: model.RegistrationStatusRegistered}
	require.NoError(t, database.DB.Create(&reg).Error)
	id := gin.Param{Key: "id", Value: strconv.Itoa(int(reg.ID))}

	resp := test.DoRequest(t, UpdateRegistration, RegistrationUpdateReq{Status: "attended"}, id)
	test.NoError(t, resp)

	var got model.Registration
	require.NoError(t, database.DB.First(&got, reg.ID).Error)
	require.Equal(t, model.RegistrationStatusAttended, got.Status)

	resp = test.DoRequest(t, UpdateRegistration, RegistrationUpdateReq{Status: "done"}, id)
	test.ErrorEqual(t, response.ErrInvalidStatus, resp)

	resp = test.DoRequest(t, UpdateRegistration, RegistrationUpdateReq{Status: "cancelled"},
		gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrRegistrationNotFound, resp)
}

func TestDeleteRegistrationNotFound(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, DeleteRegistration, nil, gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrRegistrationNotFound, resp)
}

func TestListRegistrationsFiltered(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t)
	studentX := seedStudent(t, college.ID, "TU001")
	studentY := seedStudent(t, college.ID, "TU002")
	event := seedEvent(t, college.ID, nil, model.EventStatusActive, time.Now().Add(24*time.Hour))

	require.NoError(t, database.DB.Create(&model.Registration{
		EventID: event.ID, StudentID: studentX.ID, Status: model.RegistrationStatusRegistered,
	}).Error)
	require.NoError(t, database.DB.Create(&model.Registration{
		EventID: event.ID, StudentID: studentY.ID, Status: model.RegistrationStatusCancelled,
	}).Error)

	resp := test.DoGet(t, ListRegistrations, "event_id="+strconv.Itoa(int(event.ID)))
	test.NoError(t, resp)
	require.EqualValues(t, 2, resp.Pagination.Total)

	resp = test.DoGet(t, ListRegistrations, "status=registered")
	test.NoError(t, resp)
	require.EqualValues(t, 1, resp.Pagination.Total)
}
