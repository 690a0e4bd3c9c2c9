package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"axiapac.com/hrms/core"
	"axiapac.com/hrms/infrastructure/communication"
	"axiapac.com/hrms/infrastructure/filesystem"
	"axiapac.com/hrms/security"
	"axiapac.com/hrms/web"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// employeeReads counts GET /api/employees so cache hits can be asserted.
type testServer struct {
	*httptest.Server
	employeeReads atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dm, err := core.Open(sqlite.Open(":memory:"), core.PoolOptions{MaxOpenConns: 1}, core.LogLevelSilent)
	require.NoError(t, err)
	require.NoError(t, dm.AutoMigrate())
	t.Cleanup(func() { _ = dm.Close() })

	files, err := filesystem.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	tokens, err := security.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := core.NewService(dm, core.Options{Files: files, Notifier: communication.Nop{}, Tokens: tokens, Logger: logrus.NewEntry(log)})
	router := web.NewRouter(web.RouterOptions{Service: svc, Tokens: tokens, Logger: log, MaxUploadBytes: 1 << 20})

	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/employees" {
			ts.employeeReads.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func signedIn(t *testing.T, ts *testServer) *HRMSClient {
	t.Helper()
	client := NewHRMSClient(ts.URL)
	_, err := client.Users.Register(context.Background(), "Priya Shah", "priya@example.com", "secret1")
	require.NoError(t, err)
	return client
}

func TestLoginStoresSession(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	client := signedIn(t, ts)
	client.Users.Logout()
	assert.False(t, client.Session.Valid(time.Now()))

	_, err := client.Users.Login(ctx, "priya@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	auth, err := client.Users.Login(ctx, "PRIYA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, auth.Token, client.Session.Token())
	assert.Equal(t, "priya@example.com", client.Session.User().Email)
	assert.WithinDuration(t, auth.ExpiresAt, client.Session.ExpiresAt(), time.Second)
	assert.True(t, client.Session.Valid(time.Now()))
	assert.False(t, client.Session.Valid(time.Now().Add(2*time.Hour)))

	profile, err := client.Users.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", profile.Name)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	ts := newTestServer(t)
	client := signedIn(t, ts)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := forged.SignedString([]byte("another-secret-another-secret"))
	require.NoError(t, err)
	require.NoError(t, client.Session.Set(token, nil))

	_, err = client.Employees.Search(context.Background(), "", "")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Empty(t, client.Session.Token())
}

func TestExpiredSessionSkipsRequest(t *testing.T) {
	ts := newTestServer(t)
	client := signedIn(t, ts)

	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	token, err := stale.SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	require.NoError(t, client.Session.Set(token, nil))

	_, err = client.Employees.Search(context.Background(), "", "")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Empty(t, client.Session.Token())
	assert.Zero(t, ts.employeeReads.Load())

	require.NoError(t, client.Session.Set(token, nil))
	_, err = client.Users.Login(context.Background(), "priya@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, client.Session.Valid(time.Now()))
}

func TestSessionRejectsGarbage(t *testing.T) {
	var s Session
	require.Error(t, s.Set("not a jwt", nil))
	assert.False(t, s.Valid(time.Now()))
}

func TestCandidatePromotionInvalidatesCaches(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	client := signedIn(t, ts)

	employees, err := client.Employees.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
	_, err = client.Employees.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), ts.employeeReads.Load())

	candidate, err := client.Candidates.Create(ctx, CandidateDTO{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Position:    "Backend Developer",
		Experience:  "3 years",
		Declaration: true,
		ResumeName:  "asha.pdf",
		Resume:      strings.NewReader("%PDF resume"),
	})
	require.NoError(t, err)

	active, err := client.Candidates.List(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	result, err := client.Candidates.SetStatus(ctx, candidate.ID, core.CandidateSelected)
	require.NoError(t, err)
	assert.Equal(t, "employees", result.Redirect)
	require.NotNil(t, result.Employee)

	active, err = client.Candidates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	employees, err = client.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "asha@example.com", employees[0].Email)
	assert.Equal(t, int32(2), ts.employeeReads.Load())

	_, err = client.Candidates.Get(ctx, candidate.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCandidateValidation(t *testing.T) {
	ts := newTestServer(t)
	client := signedIn(t, ts)

	_, err := client.Candidates.Create(context.Background(), CandidateDTO{Name: "Asha Rao"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "declaration")
	assert.Contains(t, apiErr.Fields, "resume")
}

func TestAttendanceAndLeaves(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	client := signedIn(t, ts)

	emp, err := client.Employees.Create(ctx, EmployeeDTO{
		Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9123456780",
		Position: "Designer", Department: "Product", JoinDate: "2023-06-01",
	})
	require.NoError(t, err)

	rec, err := client.Attendance.Mark(ctx, MarkAttendanceDTO{Employee: emp.ID, Date: "2024-03-14", Status: core.AttendanceWorkFromHome})
	require.NoError(t, err)
	assert.Equal(t, core.AttendanceWorkFromHome, rec.Status)

	daily, err := client.Attendance.Daily(ctx, "2024-03-14")
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.True(t, daily[0].Recorded)

	_, err = client.Attendance.UpdateStatus(ctx, rec.ID, "Late")
	assert.Error(t, err)

	export, err := client.Attendance.Export(ctx, "2024-03-14")
	require.NoError(t, err)
	defer export.Body.Close()
	assert.Equal(t, "attendance-2024-03-14.xlsx", export.Filename)

	leave, err := client.Leaves.Create(ctx, LeaveDTO{
		Employee: emp.ID, StartDate: "2024-04-02", Reason: "Trip",
		DocumentName: "ticket.pdf", Document: strings.NewReader("pdf bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-02", leave.EndDate)

	pending, err := client.Leaves.List(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, core.LeavePending, pending[0].Status)

	_, err = client.Leaves.SetStatus(ctx, leave.ID, core.LeaveApproved)
	require.NoError(t, err)

	all, err := client.Leaves.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.LeaveApproved, all[0].Status)

	approved, err := client.Leaves.Approved(ctx, "2024-04")
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	doc, err := client.Leaves.Document(ctx, leave.ID)
	require.NoError(t, err)
	defer doc.Body.Close()
	b, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(b))
	assert.Equal(t, "ticket.pdf", doc.Filename)
}
