package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"axiapac.com/hrms/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, "Priya Shah", " Priya@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", reg.User.Email)
	assert.NotEqual(t, "secret1", reg.User.PasswordHash)
	assert.NotEmpty(t, reg.Token)

	ts, err := security.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	claims, err := ts.ParseIdentityToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID())
	assert.Equal(t, "Priya Shah", claims.Name)

	login, err := f.svc.Login(ctx, "priya@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	profile, err := f.svc.Profile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", profile.Name)

	_, err = f.svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "", "priya", "123")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	assert.Equal(t, "Password must be at least 6 characters", ve.Fields["password"])

	_, err = f.svc.Register(ctx, "Priya", "priya@example.com", "secret1")
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, "Other", "PRIYA@example.com", "secret2")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email is already registered", ve.Fields["email"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "Priya", "priya@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "priya@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIssueToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, "Priya Shah", "priya@example.com", "secret1")
	require.NoError(t, err)

	issued, err := f.svc.IssueToken(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, reg.User.ID, issued.User.ID)

	_, err = f.svc.IssueToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentRegisterKeepsOneUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 5
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Register(ctx, "Priya", "priya@example.com", "secret1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Email is already registered", ve.Fields["email"])
	}
	assert.Equal(t, 1, succeeded)
}
