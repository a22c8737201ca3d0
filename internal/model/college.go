package model

type College struct {
	Model
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 学院名称
	Code string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`  // 学院代码
}
