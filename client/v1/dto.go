package v1

import (
	"io"
	"time"

	"axiapac.com/hrms/model"
)

type AuthDTO struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type CandidateDTO struct {
	Name        string
	Email       string
	Phone       string
	Position    string
	Experience  string
	Declaration bool
	// ResumeName and Resume are sent as the resume file
	ResumeName string
	Resume     io.Reader
}

type CandidateUpdateDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// TransitionDTO is the answer to a candidate update. Redirect is "employees" when
// the candidate was promoted.
type TransitionDTO struct {
	Candidate *model.Candidate `json:"candidate"`
	Employee  *model.Employee  `json:"employee,omitempty"`
	Redirect  string           `json:"redirect,omitempty"`
}

type EmployeeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
	JoinDate   string `json:"joinDate"` // yyyy-MM-dd
}

type EmployeeUpdateDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	JoinDate   *string `json:"joinDate,omitempty"`
}

type MarkAttendanceDTO struct {
	Employee string `json:"employee"`
	Date     string `json:"date"` // yyyy-MM-dd
	Status   string `json:"status"`
	Task     string `json:"task,omitempty"`
}

type DailyAttendanceDTO struct {
	model.AttendanceRecord
	Recorded bool `json:"recorded"`
}

type LeaveDTO struct {
	Employee     string
	StartDate    string
	EndDate      string
	Reason       string
	DocumentName string
	Document     io.Reader
}

type statusDTO struct {
	Status string `json:"status"`
}
