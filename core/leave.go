package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LeaveInput struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Reason     string
	Document   *Upload
}

type LeaveFilter struct {
	Status     string
	EmployeeID string
}

func (s *Service) CreateLeave(ctx context.Context, in LeaveInput) (*model.LeaveRecord, error) {
	v := NewValidationError()
	requireText(v, "employee", in.EmployeeID, "Employee")
	requireDate(v, "startDate", in.StartDate, "Start date")
	if strings.TrimSpace(in.EndDate) != "" {
		requireDate(v, "endDate", in.EndDate, "End date")
	}
	requireText(v, "reason", in.Reason, "Reason")
	if in.Document != nil && in.Document.Body != nil && !allowedExtension(in.Document, documentExtensions) {
		v.Add("document", "Document must be a "+strings.Join(documentExtensions, ", ")+" file")
	}

	start, _ := utils.NormalizeDate(in.StartDate)
	end := start
	if strings.TrimSpace(in.EndDate) != "" {
		end, _ = utils.NormalizeDate(in.EndDate)
	}
	// both are yyyy-MM-dd, so string order is date order
	if start != "" && end != "" && end < start {
		v.Add("endDate", "End date cannot be before start date")
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	var emp model.Employee
	if employeeID != "" {
		err := s.dm.Exec(ctx, func(db *gorm.DB) error {
			return db.First(&emp, "id = ?", employeeID).Error
		})
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			v.Add("employee", "Employee does not exist")
		case err != nil:
			return nil, upstream("find employee", err)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	rec := &model.LeaveRecord{
		Base:       model.Base{ID: uuid.NewString()},
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     LeavePending,
	}
	if in.Document != nil && in.Document.Body != nil {
		rec.Document = "leaves/" + rec.ID + in.Document.ext()
		rec.DocumentName = filepath.Base(in.Document.Filename)
		if err := s.saveUpload(ctx, rec.Document, in.Document); err != nil {
			return nil, err
		}
	}

	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(rec).Error
	}); err != nil {
		s.deleteBlob(ctx, rec.Document)
		return nil, upstream("create leave", err)
	}
	rec.Employee = &emp
	return rec, nil
}

func (s *Service) GetLeave(ctx context.Context, id string) (*model.LeaveRecord, error) {
	var rec model.LeaveRecord
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Preload("Employee").First(&rec, "id = ?", id).Error
	}); err != nil {
		return nil, notFound("leave", id, err)
	}
	return &rec, nil
}

// SetLeaveStatus records a decision on a leave request. The employee is emailed
// when the request is approved or rejected.
func (s *Service) SetLeaveStatus(ctx context.Context, id, status string) (*model.LeaveRecord, error) {
	if err := ValidateLeaveStatus(status); err != nil {
		return nil, err
	}

	var rec model.LeaveRecord
	changed := false
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Preload("Employee").First(&rec, "id = ?", id).Error; err != nil {
			return notFound("leave", id, err)
		}
		if rec.Status == status {
			return nil
		}
		if err := tx.Model(&rec).Update("status", status).Error; err != nil {
			return err
		}
		rec.Status = status
		changed = true
		return nil
	})
	if err != nil {
		return nil, upstream("set leave status", err)
	}

	if changed {
		s.log.WithFields(logrus.Fields{"leave": id, "status": status}).Info("leave status changed")
		if status != LeavePending && rec.Employee != nil {
			s.notify(ctx, Notification{
				Subject:    "Leave request " + strings.ToLower(status),
				Text:       fmt.Sprintf("Hi %s, your leave from %s to %s has been %s.", rec.Employee.Name, rec.StartDate, rec.EndDate, strings.ToLower(status)),
				Recipients: []string{rec.Employee.Email},
			})
		}
	}
	return &rec, nil
}

func (s *Service) ListLeaves(ctx context.Context, f LeaveFilter) ([]model.LeaveRecord, error) {
	if f.Status != "" {
		if err := ValidateLeaveStatus(f.Status); err != nil {
			return nil, err
		}
	}

	leaves := []model.LeaveRecord{}
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		q := db.Preload("Employee")
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.EmployeeID != "" {
			q = q.Where("employee_id = ?", f.EmployeeID)
		}
		return q.Order("start_date DESC").Order("created_at").Find(&leaves).Error
	})
	if err != nil {
		return nil, upstream("list leaves", err)
	}
	return leaves, nil
}

func (s *Service) EmployeeLeaves(ctx context.Context, employeeID string) ([]model.LeaveRecord, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.ListLeaves(ctx, LeaveFilter{EmployeeID: employeeID})
}

// ApprovedLeaves lists approved leave. A yyyy-MM month keeps only leave that
// overlaps it.
func (s *Service) ApprovedLeaves(ctx context.Context, month string) ([]model.LeaveRecord, error) {
	var first, last string
	if strings.TrimSpace(month) != "" {
		var err error
		if first, last, err = utils.MonthBounds(month); err != nil {
			v := NewValidationError()
			v.Add("month", "Month must be in yyyy-MM format")
			return nil, v
		}
	}

	leaves := []model.LeaveRecord{}
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		q := db.Preload("Employee").Where("status = ?", LeaveApproved)
		if first != "" {
			q = q.Where("start_date <= ? AND end_date >= ?", last, first)
		}
		return q.Order("start_date").Find(&leaves).Error
	})
	if err != nil {
		return nil, upstream("approved leaves", err)
	}
	return leaves, nil
}

func (s *Service) DeleteLeave(ctx context.Context, id string) error {
	var rec model.LeaveRecord
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return notFound("leave", id, err)
		}
		return tx.Delete(&model.LeaveRecord{}, "id = ?", id).Error
	})
	if err != nil {
		return upstream("delete leave", err)
	}

	s.deleteBlob(ctx, rec.Document)
	return nil
}

func (s *Service) LeaveDocument(ctx context.Context, id string) (*Download, error) {
	var rec model.LeaveRecord
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.First(&rec, "id = ?", id).Error
	}); err != nil {
		return nil, notFound("leave", id, err)
	}
	if rec.Document == "" {
		return nil, fmt.Errorf("document for leave %s: %w", id, ErrNotFound)
	}

	name := rec.DocumentName
	if name == "" {
		name = "leave-" + rec.ID + filepath.Ext(rec.Document)
	}
	return s.openBlob(ctx, rec.Document, name)
}
