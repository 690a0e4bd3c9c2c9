package model

type AttendanceRecord struct {
	Base
	EmployeeID string    `gorm:"type:char(36);not null;uniqueIndex:idx_attendance_employee_date" json:"employeeId"`
	Date       string    `gorm:"type:char(10);not null;uniqueIndex:idx_attendance_employee_date;index" json:"date"` // yyyy-MM-dd
	Status     string    `gorm:"type:varchar(20);not null;default:Present" json:"status"`
	Task       string    `gorm:"type:varchar(255)" json:"task,omitempty"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
