package model

import "time"

// Feedback 活动反馈，创建时要求存在 present 状态的签到记录
type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;uniqueIndex:idx_fb_event_student" json:"event_id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_fb_event_student" json:"student_id"`
	Rating      int       `gorm:"not null" json:"rating"` // 1-5 星
	Comment     string    `gorm:"type:varchar(1000)" json:"comment"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`

	Event   Event   `gorm:"foreignKey:EventID" json:"-"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
