package v1

import (
	"context"
	"net/http"
	"net/url"

	"axiapac.com/hrms/model"
)

// AttendanceEndpoint is not cached; the daily view changes with every mark.
type AttendanceEndpoint struct {
	transport *Transport
}

func (ep *AttendanceEndpoint) List(ctx context.Context, date, status string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	query := url.Values{"date": {date}, "status": {status}}
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/attendance", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Daily lists every employee for date, defaulting to the server's today when empty.
func (ep *AttendanceEndpoint) Daily(ctx context.Context, date string) ([]DailyAttendanceDTO, error) {
	var result []DailyAttendanceDTO
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/attendance/daily", url.Values{"date": {date}}, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (ep *AttendanceEndpoint) ByEmployee(ctx context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/attendance/employee/"+url.PathEscape(employeeID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (ep *AttendanceEndpoint) Mark(ctx context.Context, dto MarkAttendanceDTO) (*model.AttendanceRecord, error) {
	var result model.AttendanceRecord
	if err := ep.transport.JSON(ctx, http.MethodPost, "/api/attendance", nil, dto, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *AttendanceEndpoint) UpdateStatus(ctx context.Context, id, status string) (*model.AttendanceRecord, error) {
	var result model.AttendanceRecord
	if err := ep.transport.JSON(ctx, http.MethodPut, "/api/attendance/"+url.PathEscape(id), nil, statusDTO{Status: status}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *AttendanceEndpoint) Delete(ctx context.Context, id string) error {
	return ep.transport.JSON(ctx, http.MethodDelete, "/api/attendance/"+url.PathEscape(id), nil, nil, nil)
}

func (ep *AttendanceEndpoint) Export(ctx context.Context, date string) (*Download, error) {
	return ep.transport.Download(ctx, "/api/attendance/export", url.Values{"date": {date}})
}
