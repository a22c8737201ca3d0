package student

import (
	"os"
	"strconv"
	"testing"

	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"
	"campus-event-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleStudent{}).Init()
	os.Exit(m.Run())
}

func seedCollege(t *testing.T, name, code string) model.College {
	college := model.College{Name: name, Code: code}
	require.NoError(t, database.DB.Create(&college).Error)
	return college
}

func TestCreateStudent(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")

	resp := test.DoRequest(t, CreateStudent, StudentCreateReq{
		CollegeID: college.ID,
		StudentID: "TU001",
		Name:      "Alice Johnson",
		Email:     "alice.johnson@tu.edu",
	})
	test.NoError(t, resp)
	require.NotZero(t, test.CreatedID(t, resp))
}

func TestCreateStudentInvalidEmail(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")

	for _, email := range []string{"not-an-email", "a b@tu.edu", "alice@tu"} {
		resp := test.DoRequest(t, CreateStudent, StudentCreateReq{
			CollegeID: college.ID, StudentID: "TU001", Name: "Alice", Email: email,
		})
		test.ErrorEqual(t, response.ErrInvalidEmail, resp)
	}
}

func TestCreateStudentCollegeMissing(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, CreateStudent, StudentCreateReq{
		CollegeID: 999, StudentID: "TU001", Name: "Alice", Email: "alice@tu.edu",
	})
	test.ErrorEqual(t, response.ErrConstraint, resp)
}

// 学号在学院内唯一，不同学院可以重号
func TestDuplicateStudentNumber(t *testing.T) {
	test.SetupDB(t)
	tu := seedCollege(t, "Tech University", "TU")
	ec := seedCollege(t, "Engineering College", "EC")

	resp := test.DoRequest(t, CreateStudent, StudentCreateReq{
		CollegeID: tu.ID, StudentID: "S001", Name: "Alice", Email: "alice@tu.edu",
	})
	test.NoError(t, resp)

	resp = test.DoRequest(t, CreateStudent, StudentCreateReq{
		CollegeID: tu.ID, StudentID: "S001", Name: "Bob", Email: "bob@tu.edu",
	})
	test.ErrorEqual(t, response.ErrDuplicateStudentID, resp)

	resp = test.DoRequest(t, CreateStudent, StudentCreateReq{
		CollegeID: ec.ID, StudentID: "S001", Name: "Carol", Email: "carol@ec.edu",
	})
	test.NoError(t, resp)
}

func TestUpdateStudent(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")

	student := model.Student{CollegeID: college.ID, StudentID: "TU001", Name: "Alice", Email: "alice@tu.edu"}
	require.NoError(t, database.DB.Create(&student).Error)
	id := gin.Param{Key: "id", Value: strconv.Itoa(int(student.ID))}

	resp := test.DoRequest(t, UpdateStudent, StudentUpdateReq{}, id)
	test.ErrorEqual(t, response.ErrNoFieldsToUpdate, resp)

	bad := "broken"
	resp = test.DoRequest(t, UpdateStudent, StudentUpdateReq{Email: &bad}, id)
	test.ErrorEqual(t, response.ErrInvalidEmail, resp)

	year := "2025"
	resp = test.DoRequest(t, UpdateStudent, StudentUpdateReq{Year: &year}, id)
	test.NoError(t, resp)

	var got model.Student
	require.NoError(t, database.DB.First(&got, student.ID).Error)
	require.Equal(t, "2025", got.Year)
	// 未出现的字段保持原值
	require.Equal(t, "alice@tu.edu", got.Email)

	resp = test.DoRequest(t, UpdateStudent, StudentUpdateReq{Year: &year},
		gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrStudentNotFound, resp)
}

func TestListStudentsFiltered(t *testing.T) {
	test.SetupDB(t)
	tu := seedCollege(t, "Tech University", "TU")
	ec := seedCollege(t, "Engineering College", "EC")

	students := []model.Student{
		{CollegeID: tu.ID, StudentID: "TU001", Name: "Alice", Email: "alice@tu.edu", Year: "2024", Department: "CS"},
		{CollegeID: tu.ID, StudentID: "TU002", Name: "Bob", Email: "bob@tu.edu", Year: "2023", Department: "CS"},
		{CollegeID: ec.ID, StudentID: "EC001", Name: "Carol", Email: "carol@ec.edu", Year: "2024", Department: "ME"},
	}
	for i := range students {
		require.NoError(t, database.DB.Create(&students[i]).Error)
	}

	resp := test.DoGet(t, ListStudents, "college_id="+strconv.Itoa(int(tu.ID)))
	test.NoError(t, resp)
	require.EqualValues(t, 2, resp.Pagination.Total)

	resp = test.DoGet(t, ListStudents, "year=2024")
	test.NoError(t, resp)
	require.EqualValues(t, 2, resp.Pagination.Total)

	resp = test.DoGet(t, ListStudents, "department=ME")
	test.NoError(t, resp)
	require.EqualValues(t, 1, resp.Pagination.Total)
}

func TestDeleteStudent(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")

	student := model.Student{CollegeID: college.ID, StudentID: "TU001", Name: "Alice", Email: "alice@tu.edu"}
	require.NoError(t, database.DB.Create(&student).Error)

	resp := test.DoRequest(t, DeleteStudent, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(student.ID))})
	test.NoError(t, resp)

	resp = test.DoRequest(t, DeleteStudent, nil,
		gin.Param{Key: "id", Value: strconv.Itoa(int(student.ID))})
	test.ErrorEqual(t, response.ErrStudentNotFound, resp)
}
