package core

import (
	"context"
	"fmt"
	"strings"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceInput struct {
	EmployeeID string
	Date       string
	Status     string
	Task       string
}

type AttendanceFilter struct {
	Date       string
	Status     string
	EmployeeID string
}

// DailyAttendance is one employee's line on a given day. Recorded is false when no
// row exists yet and the Present default is shown instead.
type DailyAttendance struct {
	model.AttendanceRecord
	Recorded bool `json:"recorded"`
}

// SetAttendanceStatus records status for the employee on date, replacing any
// earlier status for the same day.
func (s *Service) SetAttendanceStatus(ctx context.Context, employeeID, date, status string) (*model.AttendanceRecord, error) {
	return s.MarkAttendance(ctx, AttendanceInput{EmployeeID: employeeID, Date: date, Status: status})
}

func (s *Service) MarkAttendance(ctx context.Context, in AttendanceInput) (*model.AttendanceRecord, error) {
	v := NewValidationError()
	requireText(v, "employee", in.EmployeeID, "Employee")
	requireDate(v, "date", in.Date, "Date")
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := ValidateAttendanceStatus(in.Status); err != nil {
		return nil, err
	}

	date, _ := utils.NormalizeDate(in.Date)
	employeeID := strings.TrimSpace(in.EmployeeID)
	task := strings.TrimSpace(in.Task)

	var rec model.AttendanceRecord
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		var emp model.Employee
		if err := tx.Select("id").First(&emp, "id = ?", employeeID).Error; err != nil {
			return notFound("employee", employeeID, err)
		}

		columns := []string{"status", "updated_at"}
		if task != "" {
			columns = append(columns, "task")
		}
		row := model.AttendanceRecord{EmployeeID: employeeID, Date: date, Status: in.Status, Task: task}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert attendance: %w", err)
		}

		// the row id is only known after the conflict is resolved
		return tx.Preload("Employee").
			First(&rec, "employee_id = ? AND date = ?", employeeID, date).Error
	})
	if err != nil {
		return nil, upstream("set attendance", err)
	}
	return &rec, nil
}

// UpdateAttendanceStatus changes the status of an existing record.
func (s *Service) UpdateAttendanceStatus(ctx context.Context, id, status string) (*model.AttendanceRecord, error) {
	if err := ValidateAttendanceStatus(status); err != nil {
		return nil, err
	}

	var rec model.AttendanceRecord
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return notFound("attendance", id, err)
		}
		if err := tx.Model(&rec).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Preload("Employee").First(&rec, "id = ?", id).Error
	})
	if err != nil {
		return nil, upstream("update attendance", err)
	}
	return &rec, nil
}

func (s *Service) ListAttendance(ctx context.Context, f AttendanceFilter) ([]model.AttendanceRecord, error) {
	v := NewValidationError()
	if f.Date != "" {
		requireDate(v, "date", f.Date, "Date")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if f.Status != "" {
		if err := ValidateAttendanceStatus(f.Status); err != nil {
			return nil, err
		}
	}

	records := []model.AttendanceRecord{}
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		q := db.Preload("Employee")
		if f.Date != "" {
			date, _ := utils.NormalizeDate(f.Date)
			q = q.Where("date = ?", date)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.EmployeeID != "" {
			q = q.Where("employee_id = ?", f.EmployeeID)
		}
		return q.Order("date DESC").Order("created_at").Find(&records).Error
	})
	if err != nil {
		return nil, upstream("list attendance", err)
	}
	return records, nil
}

// EmployeeAttendance lists an employee's records, newest first.
func (s *Service) EmployeeAttendance(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.ListAttendance(ctx, AttendanceFilter{EmployeeID: employeeID})
}

func (s *Service) DeleteAttendance(ctx context.Context, id string) error {
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		res := db.Delete(&model.AttendanceRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("attendance %s: %w", id, ErrNotFound)
		}
		return nil
	})
	return upstream("delete attendance", err)
}

// DailyAttendance pairs every employee with their record for date, which
// defaults to today. Employees without a record get an unsaved Present row.
func (s *Service) DailyAttendance(ctx context.Context, date string) ([]DailyAttendance, error) {
	if strings.TrimSpace(date) == "" {
		date = s.today()
	}
	v := NewValidationError()
	requireDate(v, "date", date, "Date")
	if err := v.Err(); err != nil {
		return nil, err
	}
	date, _ = utils.NormalizeDate(date)

	var employees []model.Employee
	var records []model.AttendanceRecord
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		if err := db.Order("name").Find(&employees).Error; err != nil {
			return err
		}
		return db.Where("date = ?", date).Find(&records).Error
	})
	if err != nil {
		return nil, upstream("daily attendance", err)
	}

	byEmployee := utils.KeyBy(records, func(r model.AttendanceRecord) string { return r.EmployeeID })
	result := make([]DailyAttendance, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		line := DailyAttendance{AttendanceRecord: model.AttendanceRecord{
			EmployeeID: emp.ID,
			Date:       date,
			Status:     AttendancePresent,
		}}
		if rec, ok := byEmployee[emp.ID]; ok {
			line.AttendanceRecord = rec
			line.Recorded = true
		}
		line.Employee = emp
		result = append(result, line)
	}
	return result, nil
}

// AttendanceStatusOn returns the employee's status for date, Present when unrecorded.
func (s *Service) AttendanceStatusOn(ctx context.Context, employeeID, date string) (string, error) {
	lines, err := s.DailyAttendance(ctx, date)
	if err != nil {
		return "", err
	}
	line, ok := utils.First(lines, func(l DailyAttendance) bool { return l.EmployeeID == employeeID })
	if !ok {
		return "", fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
	}
	return line.Status, nil
}
