package model

type LeaveRecord struct {
	Base
	EmployeeID   string    `gorm:"type:char(36);not null;index" json:"employeeId"`
	StartDate    string    `gorm:"type:char(10);not null;index" json:"startDate"` // yyyy-MM-dd
	EndDate      string    `gorm:"type:char(10);not null" json:"endDate"`         // yyyy-MM-dd
	Reason       string    `gorm:"type:varchar(500);not null" json:"reason"`
	Document     string    `gorm:"type:varchar(255)" json:"document,omitempty"`
	DocumentName string    `gorm:"type:varchar(255)" json:"documentName,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:Pending;index" json:"status"`
	Employee     *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

func (LeaveRecord) TableName() string {
	return "leave_records"
}
