package core

import (
	"context"
	"strings"
	"testing"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	emp, err := f.svc.CreateEmployee(ctx, validEmployee())
	require.NoError(t, err)

	got, err := f.svc.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Name)
	assert.Equal(t, "2023-06-01", got.JoinDate)

	updated, err := f.svc.UpdateEmployee(ctx, emp.ID, EmployeeUpdate{
		Department: utils.Ptr("Engineering"),
		JoinDate:   utils.Ptr("2023-07-01T00:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, "2023-07-01", updated.JoinDate)
	assert.Equal(t, "Designer", updated.Position)

	_, err = f.svc.UpdateEmployee(ctx, emp.ID, EmployeeUpdate{Name: utils.Ptr("  ")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name is required", ve.Fields["name"])

	_, err = f.svc.UpdateEmployee(ctx, "missing", EmployeeUpdate{Name: utils.Ptr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateEmployeeValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateEmployee(context.Background(), EmployeeInput{Email: "bad", JoinDate: "yesterday"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":       "Name is required",
		"email":      "Email is invalid",
		"phone":      "Phone number is required",
		"position":   "Position is required",
		"department": "Department is required",
		"joinDate":   "Join date must be a date in yyyy-MM-dd format",
	}, ve.Fields)
}

func TestListEmployeesFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.employee(t, "Ravi Kumar")
	in := validEmployee()
	in.Name, in.Email, in.Position = "Anu Menon", "anu@example.com", "Developer"
	_, err := f.svc.CreateEmployee(ctx, in)
	require.NoError(t, err)

	all, err := f.svc.ListEmployees(ctx, EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Anu Menon", all[0].Name)

	devs, err := f.svc.ListEmployees(ctx, EmployeeFilter{Position: "Developer"})
	require.NoError(t, err)
	require.Len(t, devs, 1)

	found, err := f.svc.ListEmployees(ctx, EmployeeFilter{Search: "ravi"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ravi Kumar", found[0].Name)
}

func TestDeleteEmployeeCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ravi := f.employee(t, "Ravi Kumar")
	anu := f.employee(t, "Anu Menon")

	_, err := f.svc.SetAttendanceStatus(ctx, ravi, "2024-03-14", AttendanceAbsent)
	require.NoError(t, err)
	_, err = f.svc.SetAttendanceStatus(ctx, anu, "2024-03-14", AttendancePresent)
	require.NoError(t, err)
	l, err := f.svc.CreateLeave(ctx, LeaveInput{
		EmployeeID: ravi,
		StartDate:  "2024-04-02",
		Reason:     "Trip",
		Document:   &Upload{Filename: "ticket.pdf", Body: strings.NewReader("pdf")},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEmployee(ctx, ravi))

	_, err = f.svc.GetEmployee(ctx, ravi)
	assert.ErrorIs(t, err, ErrNotFound)

	var attendance, leaves int64
	require.NoError(t, f.dm.db.Model(&model.AttendanceRecord{}).Where("employee_id = ?", ravi).Count(&attendance).Error)
	require.NoError(t, f.dm.db.Model(&model.LeaveRecord{}).Where("employee_id = ?", ravi).Count(&leaves).Error)
	assert.Zero(t, attendance)
	assert.Zero(t, leaves)
	assert.False(t, f.files.has(l.Document))

	// other employees are untouched
	remaining, err := f.svc.ListAttendance(ctx, AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, anu, remaining[0].EmployeeID)

	assert.ErrorIs(t, f.svc.DeleteEmployee(ctx, ravi), ErrNotFound)
}

func TestImportEmployees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := [][]string{
		{"name", "email", "phone", "position", "department", "joinDate"},
		{"Ravi Kumar", "ravi@example.com", "9123456780", "Designer", "Product", "2023-06-01"},
		{"Anu Menon", "anu@example.com", "9000000000", "Developer", "Engineering", "2024-01-15"},
	}
	imported, err := f.svc.ImportEmployees(ctx, rows)
	require.NoError(t, err)
	assert.Len(t, imported, 2)

	all, err := f.svc.ListEmployees(ctx, EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportEmployeesIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := [][]string{
		{"Ravi Kumar", "ravi@example.com", "9123456780", "Designer", "Product", "2023-06-01"},
		{"Anu Menon", "not-an-email", "9000000000", "Developer", "Engineering", "2024-01-15"},
		{"Short Row", "short@example.com"},
	}
	_, err := f.svc.ImportEmployees(ctx, rows)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email is invalid", ve.Fields["row 2.email"])
	assert.Contains(t, ve.Fields, "row 3.columns")

	all, err := f.svc.ListEmployees(ctx, EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
