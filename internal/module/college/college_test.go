package college

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
	(&ModuleCollege{}).Init()
	os.Exit(m.Run())
}

func TestCreateCollege(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, CreateCollege, CollegeCreateReq{Name: "Tech University", Code: "TU"})
	test.NoError(t, resp)
	id := test.CreatedID(t, resp)

	// name 和 code 都要求唯一
	resp = test.DoRequest(t, CreateCollege, CollegeCreateReq{Name: "Tech University", Code: "TU2"})
	test.ErrorEqual(t, response.ErrDuplicateCollege, resp)
	resp = test.DoRequest(t, CreateCollege, CollegeCreateReq{Name: "Another", Code: "TU"})
	test.ErrorEqual(t, response.ErrDuplicateCollege, resp)

	resp = test.DoRequest(t, GetCollege, nil, gin.Param{Key: "id", Value: strconv.Itoa(int(id))})
	test.NoError(t, resp)

	resp = test.DoRequest(t, GetCollege, nil, gin.Param{Key: "id", Value: "999"})
	test.ErrorEqual(t, response.ErrCollegeNotFound, resp)
}

func TestListColleges(t *testing.T) {
	test.SetupDB(t)

	for _, c := range []model.College{
		{Name: "Tech University", Code: "TU"},
		{Name: "Business School", Code: "BS"},
		{Name: "Arts University", Code: "AU"},
	} {
		require.NoError(t, database.DB.Create(&c).Error)
	}

	resp := test.DoGet(t, ListColleges, "page=1&limit=2")
	test.NoError(t, resp)
	require.EqualValues(t, 3, resp.Pagination.Total)
	require.EqualValues(t, 2, resp.Pagination.Pages)

	data, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
}
