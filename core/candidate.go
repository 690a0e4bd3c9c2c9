package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"axiapac.com/hrms/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RedirectEmployees tells the caller that the candidate now lives in the employee list.
const RedirectEmployees = "employees"

type CandidateInput struct {
	Name        string
	Email       string
	Phone       string
	Position    string
	Experience  string
	Declaration bool
	Resume      *Upload
}

// CandidateUpdate carries the fields to change; nil fields are left alone.
type CandidateUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Position   *string
	Experience *string
	Status     *string
}

type CandidateFilter struct {
	Status   string
	Position string
	Search   string
}

// TransitionResult is what a candidate update produced. Employee and Redirect are
// set only when the candidate was promoted.
type TransitionResult struct {
	Candidate *model.Candidate `json:"candidate"`
	Employee  *model.Employee  `json:"employee,omitempty"`
	Redirect  string           `json:"redirect,omitempty"`
}

func (r *TransitionResult) Promoted() bool {
	return r.Employee != nil
}

func activeCandidates(db *gorm.DB) *gorm.DB {
	return db.Where("archived_at IS NULL")
}

func (s *Service) CreateCandidate(ctx context.Context, in CandidateInput) (*model.Candidate, error) {
	v := NewValidationError()
	requireText(v, "name", in.Name, "Name")
	requireEmail(v, "email", in.Email)
	requireText(v, "phone", in.Phone, "Phone number")
	requireText(v, "position", in.Position, "Position")
	if !in.Declaration {
		v.Add("declaration", "You must agree to the declaration")
	}
	if in.Resume == nil || in.Resume.Body == nil {
		v.Add("resume", "Resume is required")
	} else if !allowedExtension(in.Resume, resumeExtensions) {
		v.Add("resume", "Resume must be a "+strings.Join(resumeExtensions, ", ")+" file")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	c := &model.Candidate{
		Base:        model.Base{ID: uuid.NewString()},
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Position:    strings.TrimSpace(in.Position),
		Experience:  strings.TrimSpace(in.Experience),
		Status:      CandidateNew,
		Declaration: true,
		ResumeName:  filepath.Base(in.Resume.Filename),
	}
	c.Resume = "resumes/" + c.ID + in.Resume.ext()

	if err := s.saveUpload(ctx, c.Resume, in.Resume); err != nil {
		return nil, err
	}

	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Create(c).Error
	}); err != nil {
		s.deleteBlob(ctx, c.Resume)
		return nil, upstream("create candidate", err)
	}

	s.log.WithField("candidate", c.ID).Info("candidate created")
	return c, nil
}

// GetCandidate returns an active candidate. Promoted candidates are archived and
// no longer found here.
func (s *Service) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return activeCandidates(db).First(&c, "id = ?", id).Error
	})
	if err != nil {
		return nil, notFound("candidate", id, err)
	}
	return &c, nil
}

func (s *Service) ListCandidates(ctx context.Context, f CandidateFilter) ([]model.Candidate, error) {
	if f.Status != "" {
		if err := ValidateCandidateStatus(f.Status); err != nil {
			return nil, err
		}
	}

	candidates := []model.Candidate{}
	err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		q := activeCandidates(db)
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.Position != "" {
			q = q.Where("position = ?", f.Position)
		}
		if strings.TrimSpace(f.Search) != "" {
			p := likePattern(f.Search)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ? OR LOWER(experience) LIKE ?", p, p, p, p)
		}
		return q.Order("created_at").Find(&candidates).Error
	})
	if err != nil {
		return nil, upstream("list candidates", err)
	}
	return candidates, nil
}

// SetCandidateStatus moves a candidate to status. Selected promotes the candidate
// to an employee and archives it.
func (s *Service) SetCandidateStatus(ctx context.Context, id, status string) (*TransitionResult, error) {
	return s.UpdateCandidate(ctx, id, CandidateUpdate{Status: &status})
}

// HireCandidate promotes a candidate regardless of its current status.
func (s *Service) HireCandidate(ctx context.Context, id string) (*TransitionResult, error) {
	return s.SetCandidateStatus(ctx, id, CandidateSelected)
}

func (s *Service) UpdateCandidate(ctx context.Context, id string, in CandidateUpdate) (*TransitionResult, error) {
	if err := validateCandidateUpdate(in); err != nil {
		return nil, err
	}

	result := &TransitionResult{}
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		var c model.Candidate
		if err := activeCandidates(tx).First(&c, "id = ?", id).Error; err != nil {
			return notFound("candidate", id, err)
		}

		applyCandidateUpdate(&c, in)
		if in.Status != nil {
			c.Status = *in.Status
		}
		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("save candidate: %w", err)
		}
		result.Candidate = &c

		if c.Status != CandidateSelected {
			return nil
		}

		emp, err := s.promote(tx, &c)
		if err != nil {
			return err
		}
		result.Employee = emp
		result.Redirect = RedirectEmployees
		return nil
	})
	if err != nil {
		return nil, upstream("update candidate", err)
	}

	if result.Promoted() {
		s.log.WithFields(logrus.Fields{"candidate": id, "employee": result.Employee.ID}).Info("candidate promoted")
		s.notify(ctx, Notification{
			Subject: "New employee",
			Text:    fmt.Sprintf("%s has been hired as %s", result.Employee.Name, result.Employee.Position),
		})
	}
	return result, nil
}

// promote copies the candidate into the employee table, then archives it. The
// employee row is written before the candidate leaves the active list so an
// interrupted promotion duplicates rather than loses the person.
func (s *Service) promote(tx *gorm.DB, c *model.Candidate) (*model.Employee, error) {
	emp := &model.Employee{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		Department: DefaultDepartment,
		JoinDate:   s.today(),
	}
	if err := tx.Create(emp).Error; err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	now := s.now()
	if err := tx.Model(c).Updates(map[string]any{"archived_at": now, "employee_id": emp.ID}).Error; err != nil {
		return nil, fmt.Errorf("archive candidate: %w", err)
	}
	c.ArchivedAt = &now
	c.EmployeeID = &emp.ID
	return emp, nil
}

func validateCandidateUpdate(in CandidateUpdate) error {
	if in.Status != nil {
		if err := ValidateCandidateStatus(*in.Status); err != nil {
			return err
		}
	}

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
	return v.Err()
}

func applyCandidateUpdate(c *model.Candidate, in CandidateUpdate) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Position != nil {
		c.Position = strings.TrimSpace(*in.Position)
	}
	if in.Experience != nil {
		c.Experience = strings.TrimSpace(*in.Experience)
	}
}

// DeleteCandidate removes the candidate row, archived or not, and its resume.
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	var c model.Candidate
	err := s.dm.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return notFound("candidate", id, err)
		}
		return tx.Delete(&model.Candidate{}, "id = ?", id).Error
	})
	if err != nil {
		return upstream("delete candidate", err)
	}

	s.deleteBlob(ctx, c.Resume)
	return nil
}

// Resume streams a candidate's resume. Archived candidates keep theirs.
func (s *Service) Resume(ctx context.Context, id string) (*Download, error) {
	var c model.Candidate
	if err := s.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.First(&c, "id = ?", id).Error
	}); err != nil {
		return nil, notFound("candidate", id, err)
	}
	if c.Resume == "" {
		return nil, fmt.Errorf("resume for candidate %s: %w", id, ErrNotFound)
	}

	name := c.ResumeName
	if name == "" {
		name = "resume-" + c.ID + filepath.Ext(c.Resume)
	}
	return s.openBlob(ctx, c.Resume, name)
}
