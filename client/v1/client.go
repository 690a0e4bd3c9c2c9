package v1

type HRMSClient struct {
	Transport  *Transport
	Session    *Session
	Users      *UserEndpoint
	Candidates *CandidateEndpoint
	Employees  *EmployeeEndpoint
	Attendance *AttendanceEndpoint
	Leaves     *LeaveEndpoint
}

// NewHRMSClient initializes the API client. Sign in with Users.Login, or reuse a
// token through Session.Set.
func NewHRMSClient(baseURL string) *HRMSClient {
	session := &Session{}
	t := NewTransport(baseURL, session)
	employees := &EmployeeEndpoint{transport: t}
	return &HRMSClient{
		Transport:  t,
		Session:    session,
		Users:      &UserEndpoint{transport: t},
		Candidates: &CandidateEndpoint{transport: t, employees: &employees.cache},
		Employees:  employees,
		Attendance: &AttendanceEndpoint{transport: t},
		Leaves:     &LeaveEndpoint{transport: t},
	}
}
