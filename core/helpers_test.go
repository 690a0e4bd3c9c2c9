package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"axiapac.com/hrms/security"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (m *memStore) Save(_ context.Context, key string, r io.Reader, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = b
	return nil
}

func (m *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("no blob %s", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) messages() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

type fixture struct {
	svc      *Service
	dm       *DatabaseManager
	files    *memStore
	notifier *recordingNotifier
	logs     *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dm, err := Open(sqlite.Open(":memory:"), PoolOptions{MaxOpenConns: 1}, LogLevelSilent)
	require.NoError(t, err)
	require.NoError(t, dm.AutoMigrate())
	t.Cleanup(func() { _ = dm.Close() })

	tokens, err := security.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{dm: dm, files: newMemStore(), notifier: &recordingNotifier{}, logs: hook}
	f.svc = NewService(dm, Options{
		Files:    f.files,
		Notifier: f.notifier,
		Tokens:   tokens,
		Logger:   logrus.NewEntry(logger),
		Clock:    func() time.Time { return fixedNow },
	})
	return f
}

func resume(name string) *Upload {
	return &Upload{Filename: name, ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4 resume")}
}

func validCandidate() CandidateInput {
	return CandidateInput{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Position:    "Backend Developer",
		Experience:  "3 years",
		Declaration: true,
		Resume:      resume("asha.pdf"),
	}
}

func validEmployee() EmployeeInput {
	return EmployeeInput{
		Name:       "Ravi Kumar",
		Email:      "ravi@example.com",
		Phone:      "9123456780",
		Position:   "Designer",
		Department: "Product",
		JoinDate:   "2023-06-01",
	}
}

func (f *fixture) employee(t *testing.T, name string) string {
	t.Helper()
	in := validEmployee()
	in.Name = name
	in.Email = strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
	emp, err := f.svc.CreateEmployee(context.Background(), in)
	require.NoError(t, err)
	return emp.ID
}
