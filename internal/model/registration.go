package model

import "time"

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
	RegistrationStatusAttended   RegistrationStatus = "attended"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusCancelled, RegistrationStatusAttended:
		return true
	}
	return false
}

// Registration 报名记录，取消报名是物理删除（释放容量并允许重新报名）
// (event_id, student_id) 唯一索引是防重复的最终保障
type Registration struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	EventID      uint               `gorm:"not null;uniqueIndex:idx_reg_event_student" json:"event_id"`
	StudentID    uint               `gorm:"not null;uniqueIndex:idx_reg_event_student" json:"student_id"`
	RegisteredAt time.Time          `gorm:"autoCreateTime" json:"registered_at"`
	Status       RegistrationStatus `gorm:"type:varchar(20);default:registered;not null" json:"status"`

	Event   Event   `gorm:"foreignKey:EventID" json:"-"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
