package common

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"axiapac.com/hrms/core"
	"github.com/gin-gonic/gin"
)

// FormUpload opens the file sent in field. A missing file, including a JSON or
// urlencoded body that cannot carry one, yields a nil Upload so the service can
// report it with the other field errors. The returned close func is never nil.
func FormUpload(c *gin.Context, field string, maxBytes int64) (*core.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		v := core.NewValidationError()
		v.Add(field, fmt.Sprintf("File must be at most %d MB", maxBytes>>20))
		return nil, noop, v
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open upload %s: %w", field, err)
	}
	return &core.Upload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Body:        f,
	}, func() { f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// SendDownload streams dl as an attachment and closes its body.
func SendDownload(c *gin.Context, dl *core.Download) {
	defer dl.Body.Close()

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(dl.Filename))
	c.DataFromReader(http.StatusOK, -1, dl.ContentType, dl.Body, nil)
}
