package model

type Student struct {
	Model
	CollegeID uint   `gorm:"not null;uniqueIndex:idx_college_student" json:"college_id"`
	StudentID string `gorm:"type:varchar(20);not null;uniqueIndex:idx_college_student" json:"student_id"` // 学号，学院内唯一
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	Year      string `gorm:"type:varchar(10)" json:"year"`
	Department string `gorm:"type:varchar(100)" json:"department"`

	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
