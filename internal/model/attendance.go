package model

import "time"

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	}
	return false
}

// Attendance 签到记录，创建时要求存在 registered 状态的报名
type Attendance struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	EventID     uint             `gorm:"not null;uniqueIndex:idx_att_event_student" json:"event_id"`
	StudentID   uint             `gorm:"not null;uniqueIndex:idx_att_event_student" json:"student_id"`
	CheckedInAt time.Time        `gorm:"autoCreateTime" json:"checked_in_at"`
	Status      AttendanceStatus `gorm:"type:varchar(20);default:present;not null" json:"status"`

	Event   Event   `gorm:"foreignKey:EventID" json:"-"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
