package core

import (
	"context"
	"fmt"
	"strings"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/utils"
	"gorm.io/gorm"
)

type EmployeeInput struct {
	Name       string
	Email      string
	Phone      string
	Position   string
	Department string
	JoinDate   string
}

// EmployeeUpdate carries the fields to change; nil fields are left alone.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Position   *string
	Department *string
	JoinDate   *string
}

type EmployeeFilter struct {
	Position string
	Search   string
}

func validateEmployee(v *ValidationError, prefix string, in EmployeeInput) {
	requireText(v, prefix+"name", in.Name, "Name")
	requireEmail(v, prefix+"email", in.Email)
	requireText(v, prefix+"phone", in.Phone, "Phone number")
	requireText(v, prefix+"position", in.Position, "Position")
	requireText(v, prefix+"department", in.Department, "Department")
	requireDate(v, prefix+"joinDate", in.JoinDate, "Join date")
}

func newEmployee(in EmployeeInput) *model.Employee {
	joinDate, _ := utils.NormalizeDate(in.JoinDate)
	return &model.Employee{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		JoinDate:   joinDate,
	}
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*model.Employee, error) {
	v := NewValidationError()
	validateEmployee(v, "", in)
	if err := v.Err(); err != nil {
		return nil, err
	}

	emp := newEmployee(in)
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(emp).Error
	}); err != nil {
		return nil, upstream("create employee", err)
	}
	return emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.First(&emp, "id = ?", id).Error
	}); err != nil {
		return nil, notFound("employee", id, err)
	}
	return &emp, nil
}

func (s *Service) ListEmployees(ctx context.Context, f EmployeeFilter) ([]model.Employee, error) {
	employees := []model.Employee{}
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		q := db
		if f.Position != "" {
			q = q.Where("position = ?", f.Position)
		}
		if strings.TrimSpace(f.Search) != "" {
			p := likePattern(f.Search)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(position) LIKE ? OR LOWER(department) LIKE ?", p, p, p, p, p)
		}
		return q.Order("name").Find(&employees).Error
	})
	if err != nil {
		return nil, upstream("list employees", err)
	}
	return employees, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, in EmployeeUpdate) (*model.Employee, error) {
	v := NewValidationError()
	if in.Name != nil {
		requireText(v, "name", *in.Name, "Name")
	}
	if in.Email != nil {
		requireEmail(v, "email", *in.Email)
	}
	if in.Phone != nil {
		requireText(v, "phone", *in.Phone, "Phone number")
	}
	if in.Position != nil {
		requireText(v, "position", *in.Position, "Position")
	}
	if in.Department != nil {
		requireText(v, "department", *in.Department, "Department")
	}
	if in.JoinDate != nil {
		requireDate(v, "joinDate", *in.JoinDate, "Join date")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var emp model.Employee
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&emp, "id = ?", id).Error; err != nil {
			return notFound("employee", id, err)
		}
		if in.Name != nil {
			emp.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			emp.Email = strings.TrimSpace(*in.Email)
		}
		if in.Phone != nil {
			emp.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Position != nil {
			emp.Position = strings.TrimSpace(*in.Position)
		}
		if in.Department != nil {
			emp.Department = strings.TrimSpace(*in.Department)
		}
		if in.JoinDate != nil {
			emp.JoinDate, _ = utils.NormalizeDate(*in.JoinDate)
		}
		return tx.Save(&emp).Error
	})
	if err != nil {
		return nil, upstream("update employee", err)
	}
	return &emp, nil
}

// DeleteEmployee removes the employee with its attendance and leave records.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	var documents []string
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		var emp model.Employee
		if err := tx.First(&emp, "id = ?", id).Error; err != nil {
			return notFound("employee", id, err)
		}
		if err := tx.Model(&model.LeaveRecord{}).
			Where("employee_id = ? AND document <> ''", id).
			Pluck("document", &documents).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&model.AttendanceRecord{}).Error; err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := tx.Where("employee_id = ?", id).Delete(&model.LeaveRecord{}).Error; err != nil {
			return fmt.Errorf("delete leaves: %w", err)
		}
		return tx.Delete(&emp).Error
	})
	if err != nil {
		return upstream("delete employee", err)
	}

	for _, key := range documents {
		s.deleteBlob(ctx, key)
	}
	return nil
}

// ImportEmployees creates employees from CSV rows laid out as
// name,email,phone,position,department,joinDate. A leading header row is skipped.
// Nothing is written unless every row is valid.
func (s *Service) ImportEmployees(ctx context.Context, rows [][]string) ([]model.Employee, error) {
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(rows[0][0], "name") {
		rows = rows[1:]
	}

	v := NewValidationError()
	employees := make([]model.Employee, 0, len(rows))
	for i, row := range rows {
		prefix := fmt.Sprintf("row %d.", i+1)
		if len(row) < 6 {
			v.Add(prefix+"columns", fmt.Sprintf("expected 6 columns, got %d", len(row)))
			continue
		}
		in := EmployeeInput{Name: row[0], Email: row[1], Phone: row[2], Position: row[3], Department: row[4], JoinDate: row[5]}
		validateEmployee(v, prefix, in)
		employees = append(employees, *newEmployee(in))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return employees, nil
	}

	if err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.CreateInBatches(&employees, 100).Error
	}); err != nil {
		return nil, upstream("import employees", err)
	}
	return employees, nil
}
