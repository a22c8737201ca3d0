package report

import (
	"fmt"
	"math"
	"time"

	"campus-event-system/internal/global/response"
	"campus-event-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func writeExcel(c *gin.Context, name string, data any) {
	f := excelize.NewFile()
	defer func() { tools.PanicOnErr(f.Close()) }()

	if err := tools.ExportToExcel(f, "", data); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	filename := fmt.Sprintf("%s_%d.xlsx", name, time.Now().Unix())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Cache-Control", "must-revalidate")
	c.Header("Pragma", "public")
	c.Header("Expires", "0")
	_ = f.Write(c.Writer)
}

// ExportEventPopularity 导出活动热度报表，不分页不限条数
func ExportEventPopularity(c *gin.Context) {
	rows, err := selectEventPopularity(c.Query("college_id"), c.Query("event_type"), math.MaxInt32)
	if err != nil {
		log.Error("导出活动热度报表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	writeExcel(c, "event_popularity", rows)
}

// ExportStudentParticipation 导出学生参与度报表
func ExportStudentParticipation(c *gin.Context) {
	rows, _, err := selectStudentParticipation(c.Query("college_id"), c.Query("student_id"), 0, math.MaxInt32)
	if err != nil {
		log.Error("导出学生参与度报表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	writeExcel(c, "student_participation", rows)
}
