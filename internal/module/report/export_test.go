package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-event-system/internal/model"
	"campus-event-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func doExport(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var err error
	c.Request, err = http.NewRequest(http.MethodGet, "/test", nil)
	require.NoError(t, err)
	handler(c)
	return w
}

// 工作簿要在写出响应之后才关闭，关早了导出的就是空文件
func TestExportEventPopularity(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")
	event := seedEvent(t, college.ID, "Workshop", model.EventTypeWorkshop)
	alice := seedStudent(t, college.ID, "TU001")
	seedRegistration(t, event.ID, alice.ID)

	w := doExport(t, ExportEventPopularity)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "event_popularity")
	require.NotZero(t, w.Body.Len())
	// xlsx 是 zip 容器，文件头固定 PK
	require.Equal(t, []byte{'P', 'K'}, w.Body.Bytes()[:2])
}

func TestExportStudentParticipation(t *testing.T) {
	test.SetupDB(t)
	college := seedCollege(t, "Tech University", "TU")
	seedStudent(t, college.ID, "TU001")

	w := doExport(t, ExportStudentParticipation)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "student_participation")
	require.NotZero(t, w.Body.Len())
}
