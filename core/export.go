package core

import (
	"context"
	"fmt"
	"io"

	"axiapac.com/hrms/model"
	"axiapac.com/hrms/utils"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportEmployees renders the employee list as an xlsx workbook.
func (s *Service) ExportEmployees(ctx context.Context) (*Download, error) {
	employees, err := s.ListEmployees(ctx, EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	rows := utils.Map(employees, func(e model.Employee) []any {
		return []any{e.Name, e.Email, e.Phone, e.Position, e.Department, e.JoinDate}
	})
	return workbook("employees.xlsx", "Employees",
		[]any{"Name", "Email", "Phone", "Position", "Department", "Join Date"}, rows)
}

// ExportAttendance renders the daily attendance sheet for date.
func (s *Service) ExportAttendance(ctx context.Context, date string) (*Download, error) {
	lines, err := s.DailyAttendance(ctx, date)
	if err != nil {
		return nil, err
	}

	day := s.today()
	if len(lines) > 0 {
		day = lines[0].Date
	}
	rows := utils.Map(lines, func(l DailyAttendance) []any {
		name, position := "", ""
		if l.Employee != nil {
			name, position = l.Employee.Name, l.Employee.Position
		}
		return []any{name, position, l.Date, l.Status, l.Task}
	})
	return workbook(fmt.Sprintf("attendance-%s.xlsx", day), "Attendance",
		[]any{"Employee", "Position", "Date", "Status", "Task"}, rows)
}

func workbook(filename, sheet string, header []any, rows [][]any) (*Download, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, upstream("export "+filename, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, upstream("export "+filename, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, upstream("export "+filename, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, upstream("export "+filename, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, upstream("export "+filename, err)
	}
	return &Download{Filename: filename, ContentType: xlsxContentType, Body: io.NopCloser(buf)}, nil
}
