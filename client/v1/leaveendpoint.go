package v1

import (
	"context"
	"net/http"
	"net/url"

	"axiapac.com/hrms/model"
)

type LeaveEndpoint struct {
	transport *Transport
	cache     ListCache[model.LeaveRecord]
}

// List returns every leave request, cached until the next write.
func (ep *LeaveEndpoint) List(ctx context.Context) ([]model.LeaveRecord, error) {
	return ep.cache.Get(ctx, func(ctx context.Context) ([]model.LeaveRecord, error) {
		return ep.ByStatus(ctx, "")
	})
}

func (ep *LeaveEndpoint) ByStatus(ctx context.Context, status string) ([]model.LeaveRecord, error) {
	return ep.list(ctx, "/api/leaves", url.Values{"status": {status}})
}

// Approved returns approved leaves overlapping month (yyyy-MM), or all of them.
func (ep *LeaveEndpoint) Approved(ctx context.Context, month string) ([]model.LeaveRecord, error) {
	return ep.list(ctx, "/api/leaves/approved", url.Values{"month": {month}})
}

func (ep *LeaveEndpoint) ByEmployee(ctx context.Context, employeeID string) ([]model.LeaveRecord, error) {
	return ep.list(ctx, "/api/leaves/employee/"+url.PathEscape(employeeID), nil)
}

func (ep *LeaveEndpoint) list(ctx context.Context, path string, query url.Values) ([]model.LeaveRecord, error) {
	var result []model.LeaveRecord
	if err := ep.transport.JSON(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (ep *LeaveEndpoint) Create(ctx context.Context, dto LeaveDTO) (*model.LeaveRecord, error) {
	fields := map[string]string{
		"employee":  dto.Employee,
		"startDate": dto.StartDate,
		"endDate":   dto.EndDate,
		"reason":    dto.Reason,
	}
	files := []File{{Field: "document", Filename: dto.DocumentName, Body: dto.Document}}

	var result model.LeaveRecord
	if err := ep.transport.Multipart(ctx, "/api/leaves", fields, files, &result); err != nil {
		return nil, err
	}
	ep.cache.Invalidate()
	return &result, nil
}

func (ep *LeaveEndpoint) SetStatus(ctx context.Context, id, status string) (*model.LeaveRecord, error) {
	var result model.LeaveRecord
	if err := ep.transport.JSON(ctx, http.MethodPut, "/api/leaves/"+url.PathEscape(id), nil, statusDTO{Status: status}, &result); err != nil {
		return nil, err
	}
	ep.cache.Invalidate()
	return &result, nil
}

func (ep *LeaveEndpoint) Delete(ctx context.Context, id string) error {
	if err := ep.transport.JSON(ctx, http.MethodDelete, "/api/leaves/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	ep.cache.Invalidate()
	return nil
}

func (ep *LeaveEndpoint) Document(ctx context.Context, id string) (*Download, error) {
	return ep.transport.Download(ctx, "/api/leaves/"+url.PathEscape(id)+"/document", nil)
}
