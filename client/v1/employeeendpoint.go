package v1

import (
	"context"
	"net/http"
	"net/url"

	"axiapac.com/hrms/model"
)

type EmployeeEndpoint struct {
	transport *Transport
	cache     ListCache[model.Employee]
}

func (ep *EmployeeEndpoint) List(ctx context.Context) ([]model.Employee, error) {
	return ep.cache.Get(ctx, func(ctx context.Context) ([]model.Employee, error) {
		return ep.Search(ctx, "", "")
	})
}

func (ep *EmployeeEndpoint) Search(ctx context.Context, position, search string) ([]model.Employee, error) {
	var result []model.Employee
	query := url.Values{"position": {position}, "search": {search}}
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/employees", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (ep *EmployeeEndpoint) Get(ctx context.Context, id string) (*model.Employee, error) {
	var result model.Employee
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *EmployeeEndpoint) Create(ctx context.Context, dto EmployeeDTO) (*model.Employee, error) {
	var result model.Employee
	if err := ep.transport.JSON(ctx, http.MethodPost, "/api/employees", nil, dto, &result); err != nil {
		return nil, err
	}
	ep.cache.Invalidate()
	return &result, nil
}

func (ep *EmployeeEndpoint) Update(ctx context.Context, id string, dto EmployeeUpdateDTO) (*model.Employee, error) {
	var result model.Employee
	if err := ep.transport.JSON(ctx, http.MethodPut, "/api/employees/"+url.PathEscape(id), nil, dto, &result); err != nil {
		return nil, err
	}
	ep.cache.Invalidate()
	return &result, nil
}

func (ep *EmployeeEndpoint) Delete(ctx context.Context, id string) error {
	if err := ep.transport.JSON(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	ep.cache.Invalidate()
	return nil
}

// Export downloads the employee workbook.
func (ep *EmployeeEndpoint) Export(ctx context.Context) (*Download, error) {
	return ep.transport.Download(ctx, "/api/employees/export", nil)
}
