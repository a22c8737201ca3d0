package feedback

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
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleFeedback{}).Init()
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
		Title:     "Data Science Seminar",
		EventType: model.EventTypeSeminar,
		StartDate: time.Now().Add(-2 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
		Status:    model.EventStatusActive,
	}
	require.NoError(t, database.DB.Create(&event).Error)
	return fixture{student: student, event: event}
}

func attend(t *testing.T, f fixture, status model.AttendanceStatus) {
	require.NoError(t, database.DB.Create(&model.Attendance{
		EventID:   f.event.ID,
		StudentID: f.student.ID,
		Status:    status,
	}).Error)
}

func rating(r int) *int { return &r }

// 反馈只对 present 签到开放，absent 不算出席
func TestSubmitFeedbackRequiresPresence(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)

	resp := test.DoRequest(t, SubmitFeedback, FeedbackCreateReq{
		EventID: f.event.ID, StudentID: f.student.ID, Rating: rating(5),
	})
	test.ErrorEqual(t, response.ErrStudentNotAttended, resp)

	attend(t, f, model.AttendanceStatusAbsent)
	resp = test.DoRequest(t, SubmitFeedback, FeedbackCreateReq{
		EventID: f.event.ID, StudentID: f.student.ID, Rating: rating(5),
	})
	test.ErrorEqual(t, response.ErrStudentNotAttended, resp)
}

func TestSubmitFeedback(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	attend(t, f, model.AttendanceStatusPresent)

	resp := test.DoRequest(t, SubmitFeedback, FeedbackCreateReq{
		EventID: f.event.ID, StudentID: f.student.ID, Rating: rating(4), Comment: "Great event! Learned a lot.",
	})
	test.NoError(t, resp)
	require.NotZero(t, test.CreatedID(t, resp))

	resp = test.DoRequest(t, SubmitFeedback, FeedbackCreateReq{
		EventID: f.event.ID, StudentID: f.student.ID, Rating: rating(2),
	})
	test.ErrorEqual(t, response.ErrFeedbackAlreadySubmitted, resp)
}

func TestSubmitFeedbackInvalidRating(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	attend(t, f, model.AttendanceStatusPresent)

	for _, r := range []int{0, 6, -1} {
		resp := test.DoRequest(t, SubmitFeedback, FeedbackCreateReq{
			EventID: f.event.ID, StudentID: f.student.ID, Rating: rating(r),
		})
		test.ErrorEqual(t, response.ErrInvalidRating, resp)
	}
}

func TestUpdateFeedback(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	attend(t, f, model.AttendanceStatusPresent)

	fb := model.Feedback{EventID: f.event.ID, StudentID: f.student.ID, Rating: 3, Comment: "ok"}
	require.NoError(t, database.DB.Create(&fb).Error)
	id := gin.Param{Key: "id", Value: strconv.Itoa(int(fb.ID))}

	resp := test.DoRequest(t, UpdateFeedback, FeedbackUpdateReq{}, id)
	test.ErrorEqual(t, response.ErrNoFieldsToUpdate, resp)

	resp = test.DoRequest(t, UpdateFeedback, FeedbackUpdateReq{Rating: rating(9)}, id)
	test.ErrorEqual(t, response.ErrInvalidRating, resp)

	comment := "Very informative and well-organized."
	resp = test.DoRequest(t, UpdateFeedback, FeedbackUpdateReq{Rating: rating(5), Comment: &comment}, id)
	test.NoError(t, resp)

	var got model.Feedback
	require.NoError(t, database.DB.First(&got, fb.ID).Error)
	require.Equal(t, 5, got.Rating)
	require.Equal(t, comment, got.Comment)

	resp = test.DoRequest(t, UpdateFeedback, FeedbackUpdateReq{Rating: rating(5)},
		gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrFeedbackNotFound, resp)
}

func TestDeleteFeedback(t *testing.T) {
	test.SetupDB(t)
	f := seed(t)
	attend(t, f, model.AttendanceStatusPresent)

	fb := model.Feedback{EventID: f.event.ID, StudentID: f.student.ID, Rating: 3}
	require.NoError(t, database.DB.Create(&fb).Error)

	resp := test.DoRequest(t, DeleteFeedback, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(fb.ID))})
	test.NoError(t, resp)

	resp = test.DoRequest(t, DeleteFeedback, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(fb.ID))})
	test.ErrorEqual(t, response.ErrFeedbackNotFound, resp)
}
