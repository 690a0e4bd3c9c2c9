package model

// All lists every table model, in creation order.
func All() []any {
	return []any{&User{}, &Employee{}, &Candidate{}, &AttendanceRecord{}, &LeaveRecord{}}
}
