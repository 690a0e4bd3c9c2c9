package core

import (
	"context"
	"testing"

	"axiapac.com/hrms/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAttendanceStatusIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ravi Kumar")

	first, err := f.svc.SetAttendanceStatus(ctx, emp, "2024-03-14", AttendancePresent)
	require.NoError(t, err)
	second, err := f.svc.SetAttendanceStatus(ctx, emp, "2024-03-14", AttendancePresent)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, AttendancePresent, second.Status)
	require.NotNil(t, second.Employee)
	assert.Equal(t, "Ravi Kumar", second.Employee.Name)

	var count int64
	require.NoError(t, f.dm.db.Model(&model.AttendanceRecord{}).Where("employee_id = ?", emp).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetAttendanceStatusReplacesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ravi Kumar")

	_, err := f.svc.MarkAttendance(ctx, AttendanceInput{EmployeeID: emp, Date: "2024-03-14", Status: AttendancePresent, Task: "API review"})
	require.NoError(t, err)
	rec, err := f.svc.SetAttendanceStatus(ctx, emp, "2024-03-14T10:00:00Z", AttendanceWorkFromHome)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-14", rec.Date)
	assert.Equal(t, AttendanceWorkFromHome, rec.Status)
	// an empty task keeps the earlier one
	assert.Equal(t, "API review", rec.Task)

	list, err := f.svc.ListAttendance(ctx, AttendanceFilter{Date: "2024-03-14"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSetAttendanceStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ravi Kumar")

	_, err := f.svc.SetAttendanceStatus(ctx, "missing", "2024-03-14", AttendancePresent)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SetAttendanceStatus(ctx, emp, "14/03/2024", AttendancePresent)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "date")

	_, err = f.svc.SetAttendanceStatus(ctx, emp, "2024-03-14", "Late")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	list, err := f.svc.ListAttendance(ctx, AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateAttendanceStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.employee(t, "Ravi Kumar")

	rec, err := f.svc.SetAttendanceStatus(ctx, emp, "2024-03-14", AttendancePresent)
	require.NoError(t, err)

	updated, err := f.svc.UpdateAttendanceStatus(ctx, rec.ID, AttendanceMedicalLeave)
	require.NoError(t, err)
	assert.Equal(t, AttendanceMedicalLeave, updated.Status)

	_, err = f.svc.UpdateAttendanceStatus(ctx, rec.ID, "Holiday")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = f.svc.UpdateAttendanceStatus(ctx, "missing", AttendanceAbsent)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyAttendanceDefaultsToPresent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ravi := f.employee(t, "Ravi Kumar")
	anu := f.employee(t, "Anu Menon")

	_, err := f.svc.SetAttendanceStatus(ctx, ravi, "2024-03-15", AttendanceAbsent)
	require.NoError(t, err)

	// empty date means today
	lines, err := f.svc.DailyAttendance(ctx, "")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, anu, lines[0].EmployeeID)
	assert.False(t, lines[0].Recorded)
	assert.Empty(t, lines[0].ID)
	assert.Equal(t, AttendancePresent, lines[0].Status)
	assert.Equal(t, "2024-03-15", lines[0].Date)

	assert.Equal(t, ravi, lines[1].EmployeeID)
	assert.True(t, lines[1].Recorded)
	assert.Equal(t, AttendanceAbsent, lines[1].Status)
	require.NotNil(t, lines[1].Employee)
	assert.Equal(t, "Ravi Kumar", lines[1].Employee.Name)

	// the default row is never written
	var count int64
	require.NoError(t, f.dm.db.Model(&model.AttendanceRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	status, err := f.svc.AttendanceStatusOn(ctx, anu, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, AttendancePresent, status)
}

func TestListAndDeleteAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ravi := f.employee(t, "Ravi Kumar")
	anu := f.employee(t, "Anu Menon")

	_, err := f.svc.SetAttendanceStatus(ctx, ravi, "2024-03-13", AttendanceAbsent)
	require.NoError(t, err)
	_, err = f.svc.SetAttendanceStatus(ctx, ravi, "2024-03-14", AttendancePresent)
	require.NoError(t, err)
	rec, err := f.svc.SetAttendanceStatus(ctx, anu, "2024-03-14", AttendanceAbsent)
	require.NoError(t, err)

	absent, err := f.svc.ListAttendance(ctx, AttendanceFilter{Status: AttendanceAbsent})
	require.NoError(t, err)
	assert.Len(t, absent, 2)

	history, err := f.svc.EmployeeAttendance(ctx, ravi)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-14", history[0].Date)

	_, err = f.svc.EmployeeAttendance(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.svc.DeleteAttendance(ctx, rec.ID))
	assert.ErrorIs(t, f.svc.DeleteAttendance(ctx, rec.ID), ErrNotFound)

	_, err = f.svc.ListAttendance(ctx, AttendanceFilter{Status: "Late"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
