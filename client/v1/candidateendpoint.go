package v1

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"axiapac.com/hrms/model"
)

type CandidateEndpoint struct {
	transport *Transport
	cache     ListCache[model.Candidate]
	employees *ListCache[model.Employee]
}

// List returns every active candidate, served from the cache after the first call.
func (ep *CandidateEndpoint) List(ctx context.Context) ([]model.Candidate, error) {
	return ep.cache.Get(ctx, func(ctx context.Context) ([]model.Candidate, error) {
		return ep.Search(ctx, "", "", "")
	})
}

// Search always goes to the server.
func (ep *CandidateEndpoint) Search(ctx context.Context, status, position, search string) ([]model.Candidate, error) {
	query := url.Values{"status": {status}, "position": {position}, "search": {search}}
	var result []model.Candidate
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/candidates", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (ep *CandidateEndpoint) Get(ctx context.Context, id string) (*model.Candidate, error) {
	var result model.Candidate
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/candidates/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *CandidateEndpoint) Create(ctx context.Context, dto CandidateDTO) (*model.Candidate, error) {
	fields := map[string]string{
		"name":        dto.Name,
		"email":       dto.Email,
		"phone":       dto.Phone,
		"position":    dto.Position,
		"experience":  dto.Experience,
		"declaration": strconv.FormatBool(dto.Declaration),
	}
	files := []File{{Field: "resume", Filename: dto.ResumeName, Body: dto.Resume}}

	var result model.Candidate
	if err := ep.transport.Multipart(ctx, "/api/candidates", fields, files, &result); err != nil {
		return nil, err
	}
	ep.cache.Invalidate()
	return &result, nil
}

// Update edits the candidate. A promotion also drops the cached employee list.
func (ep *CandidateEndpoint) Update(ctx context.Context, id string, dto CandidateUpdateDTO) (*TransitionDTO, error) {
	var result TransitionDTO
	if err := ep.transport.JSON(ctx, http.MethodPut, "/api/candidates/"+url.PathEscape(id), nil, dto, &result); err != nil {
		return nil, err
	}
	ep.invalidate(&result)
	return &result, nil
}

func (ep *CandidateEndpoint) SetStatus(ctx context.Context, id, status string) (*TransitionDTO, error) {
	return ep.Update(ctx, id, CandidateUpdateDTO{Status: &status})
}

func (ep *CandidateEndpoint) Hire(ctx context.Context, id string) (*TransitionDTO, error) {
	var result TransitionDTO
	if err := ep.transport.JSON(ctx, http.MethodPost, "/api/candidates/"+url.PathEscape(id)+"/hire", nil, nil, &result); err != nil {
		return nil, err
	}
	ep.invalidate(&result)
	return &result, nil
}

func (ep *CandidateEndpoint) Delete(ctx context.Context, id string) error {
	if err := ep.transport.JSON(ctx, http.MethodDelete, "/api/candidates/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	ep.cache.Invalidate()
	return nil
}

func (ep *CandidateEndpoint) Resume(ctx context.Context, id string) (*Download, error) {
	return ep.transport.Download(ctx, "/api/candidates/"+url.PathEscape(id)+"/resume", nil)
}

func (ep *CandidateEndpoint) invalidate(result *TransitionDTO) {
	ep.cache.Invalidate()
	if result.Employee != nil && ep.employees != nil {
		ep.employees.Invalidate()
	}
}
