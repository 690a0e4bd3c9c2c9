package core

import "slices"

const (
	CandidateNew       = "New"
	CandidateScheduled = "Scheduled"
	CandidateOngoing   = "Ongoing"
	CandidateSelected  = "Selected"
	CandidateRejected  = "Rejected"
)

const (
	AttendancePresent      = "Present"
	AttendanceAbsent       = "Absent"
	AttendanceMedicalLeave = "Medical Leave"
	AttendanceWorkFromHome = "Work From Home"
)

const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

var (
	CandidateStatuses  = []string{CandidateNew, CandidateScheduled, CandidateOngoing, CandidateSelected, CandidateRejected}
	AttendanceStatuses = []string{AttendancePresent, AttendanceAbsent, AttendanceMedicalLeave, AttendanceWorkFromHome}
	LeaveStatuses      = []string{LeavePending, LeaveApproved, LeaveRejected}
)

func checkStatus(resource, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &StatusError{Resource: resource, Value: value, Allowed: allowed}
}

func ValidateCandidateStatus(s string) error {
	return checkStatus("candidate", s, CandidateStatuses)
}

func ValidateAttendanceStatus(s string) error {
	return checkStatus("attendance", s, AttendanceStatuses)
}

func ValidateLeaveStatus(s string) error {
	return checkStatus("leave", s, LeaveStatuses)
}
