package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotExist is returned by Open for a key that was never saved or was deleted.
var ErrNotExist = errors.New("file does not exist")

// Store keeps uploaded files under slash separated keys such as resumes/<id>.pdf.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type Options struct {
	Driver string
	Dir    string
	Bucket string
	Prefix string
}

// New builds the store selected by opts.Driver. awsCfg is only used by the s3 driver.
func New(opts Options, awsCfg *aws.Config) (Store, error) {
	switch opts.Driver {
	case "", DriverLocal:
		return NewLocalStore(opts.Dir)
	case DriverS3:
		if opts.Bucket == "" {
			return nil, errors.New("s3 storage requires a bucket")
		}
		if awsCfg == nil {
			return nil, errors.New("s3 storage requires aws config")
		}
		return NewS3Store(s3.NewFromConfig(*awsCfg), opts.Bucket, opts.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid file key %q", key)
	}
	return k, nil
}
