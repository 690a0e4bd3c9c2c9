package model

type Employee struct {
	Base
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Email      string `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone      string `gorm:"type:varchar(50);not null" json:"phone"`
	Position   string `gorm:"type:varchar(100);not null;index" json:"position"`
	Department string `gorm:"type:varchar(100);not null" json:"department"`
	JoinDate   string `gorm:"type:char(10);not null" json:"joinDate"` // yyyy-MM-dd
}

func (Employee) TableName() string {
	return "employees"
}
