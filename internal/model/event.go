package model

import "time"

type EventType string

const (
	EventTypeHackathon EventType = "hackathon"
	EventTypeWorkshop  EventType = "workshop"
	EventTypeTechTalk  EventType = "tech_talk"
	EventTypeFest      EventType = "fest"
	EventTypeSeminar   EventType = "seminar"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeHackathon, EventTypeWorkshop, EventTypeTechTalk, EventTypeFest, EventTypeSeminar:
		return true
	}
	return false
}

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

type Event struct {
	Model
	CollegeID   uint        `gorm:"not null;index" json:"college_id"`
	Title       string      `gorm:"type:varchar(200);not null" json:"title"`
	Description string      `gorm:"type:varchar(1000)" json:"description"`
	EventType   EventType   `gorm:"type:varchar(20);not null" json:"event_type"`
	StartDate   time.Time   `gorm:"not null" json:"start_date"`
	EndDate     time.Time   `gorm:"not null" json:"end_date"`
	Location    string      `gorm:"type:varchar(200)" json:"location"`
	// 为空表示不限制人数
	MaxParticipants *int        `json:"max_participants"`
	Status          EventStatus `gorm:"type:varchar(20);default:active;not null" json:"status"`
	CreatedBy       string      `gorm:"type:varchar(100)" json:"created_by"`

	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
