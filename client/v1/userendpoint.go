package v1

import (
	"context"
	"net/http"

	"axiapac.com/hrms/model"
)

type UserEndpoint struct {
	transport *Transport
}

func (ep *UserEndpoint) Register(ctx context.Context, name, email, password string) (*AuthDTO, error) {
	return ep.authenticate(ctx, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login signs in and stores the token in the client session.
func (ep *UserEndpoint) Login(ctx context.Context, email, password string) (*AuthDTO, error) {
	return ep.authenticate(ctx, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// authenticate drops any held token first, so an expired one cannot block sign in.
func (ep *UserEndpoint) authenticate(ctx context.Context, path string, payload map[string]string) (*AuthDTO, error) {
	ep.transport.Session.Clear()

	var result AuthDTO
	if err := ep.transport.JSON(ctx, http.MethodPost, path, nil, payload, &result); err != nil {
		return nil, err
	}
	if err := ep.transport.Session.Set(result.Token, result.User); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *UserEndpoint) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := ep.transport.JSON(ctx, http.MethodGet, "/api/users/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout only forgets the token; the server keeps no session state.
func (ep *UserEndpoint) Logout() {
	ep.transport.Session.Clear()
}
