package model

import "time"

type Candidate struct {
	Base
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone       string     `gorm:"type:varchar(50);not null" json:"phone"`
	Position    string     `gorm:"type:varchar(100);not null;index" json:"position"`
	Experience  string     `gorm:"type:varchar(255)" json:"experience"`
	Status      string     `gorm:"type:varchar(20);not null;default:New" json:"status"`
	Resume      string     `gorm:"type:varchar(255)" json:"resume,omitempty"`
	ResumeName  string     `gorm:"type:varchar(255)" json:"resumeName,omitempty"`
	Declaration bool       `gorm:"not null" json:"declaration"`
	EmployeeID  *string    `gorm:"type:char(36)" json:"employeeId,omitempty"`
	ArchivedAt  *time.Time `gorm:"index" json:"archivedAt,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}
