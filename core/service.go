package core

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"axiapac.com/hrms/security"
	"axiapac.com/hrms/utils"
	"github.com/sirupsen/logrus"
)

// BlobStore keeps uploaded resumes and leave documents.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Notification is a post-commit message. Recipients is optional; channel style
// notifiers ignore it.
type Notification struct {
	Subject    string
	Text       string
	Recipients []string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type TokenIssuer interface {
	CreateIdentityToken(userID string, identity security.Identity) (string, time.Time, error)
}

// Upload is a file received with a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (u *Upload) ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

// Download is a stored file streamed back to the caller, who must close Body.
type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

const DefaultDepartment = "Unassigned"

var (
	resumeExtensions   = []string{".pdf", ".doc", ".docx"}
	documentExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
)

type Options struct {
	Files    BlobStore
	Notifier Notifier
	Tokens   TokenIssuer
	Logger   *logrus.Entry
	Clock    func() time.Time
	Location *time.Location
}

// Service holds the HR use cases. Each method is one request's worth of work.
type Service struct {
	dm       *DatabaseManager
	files    BlobStore
	notifier Notifier
	tokens   TokenIssuer
	log      *logrus.Entry
	now      func() time.Time
	loc      *time.Location
}

func NewService(dm *DatabaseManager, opts Options) *Service {
	s := &Service{
		dm:       dm,
		files:    opts.Files,
		notifier: opts.Notifier,
		tokens:   opts.Tokens,
		log:      opts.Logger,
		now:      opts.Clock,
		loc:      opts.Location,
	}
	if s.log == nil {
		s.log = logrus.NewEntry(logrus.StandardLogger())
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

func (s *Service) saveUpload(ctx context.Context, key string, u *Upload) error {
	if s.files == nil {
		return &UpstreamError{Op: "store " + key, Err: errors.New("no file store configured")}
	}
	return upstream("store "+key, s.files.Save(ctx, key, u.Body, u.ContentType))
}

func (s *Service) openBlob(ctx context.Context, key, filename string) (*Download, error) {
	if s.files == nil {
		return nil, &UpstreamError{Op: "open " + key, Err: errors.New("no file store configured")}
	}
	body, err := s.files.Open(ctx, key)
	if err != nil {
		return nil, upstream("open "+key, err)
	}
	return &Download{Filename: filename, ContentType: contentTypeFor(filename), Body: body}, nil
}

func (s *Service) deleteBlob(ctx context.Context, key string) {
	if s.files == nil || key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to delete stored file")
	}
}

// notify runs after commit; a failed notification never fails the request.
func (s *Service) notify(ctx context.Context, n Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.WithError(err).WithField("subject", n.Subject).Warn("failed to send notification")
	}
}

func (s *Service) today() string {
	return utils.Today(s.now(), s.loc)
}

func allowedExtension(u *Upload, allowed []string) bool {
	return slices.Contains(allowed, u.ext())
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
