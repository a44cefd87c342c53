// Package storage keeps uploaded craft images on local disk.
package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
)

// URLPrefix is where saved images are served from.
const URLPrefix = "/uploads/"

var _ domain.ImageStore = (*DiskImageStore)(nil)

type DiskImageStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
	log      *logrus.Logger
}

func NewDiskImageStore(dir string, maxBytes int64, logger *logrus.Logger) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskImageStore{dir: dir, maxBytes: maxBytes, now: time.Now, log: logger}, nil
}

func (s *DiskImageStore) Dir() string { return s.dir }

// Save sniffs the content type, then writes the file as <unixmillis>-<uuid><ext>.
func (s *DiskImageStore) Save(_ context.Context, upload domain.ImageUpload) (string, error) {
	if upload.Content == nil {
		return "", domain.ValidationError("image is required")
	}
	if upload.Size > s.maxBytes {
		return "", domain.ValidationError("image exceeds %d bytes", s.maxBytes)
	}

	br := bufio.NewReaderSize(upload.Content, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", domain.StorageError(err, "could not read upload")
	}
	if len(head) == 0 {
		return "", domain.ValidationError("image is empty")
	}
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ValidationError("uploaded file must be an image, got %s", contentType)
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), extensionFor(upload.Filename, contentType))
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", domain.StorageError(err, "could not store image")
	}

	written, copyErr := io.Copy(f, io.LimitReader(br, s.maxBytes+1))
	closeErr := f.Close()
	if copyErr == nil && written > s.maxBytes {
		_ = os.Remove(full)
		return "", domain.ValidationError("image exceeds %d bytes", s.maxBytes)
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(full)
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", domain.StorageError(copyErr, "could not store image")
	}

	s.log.Infof("Storage: Saved image %s (%d bytes, %s)", name, written, contentType)
	return URLPrefix + name, nil
}

// Delete removes an image previously returned by Save. Missing files are ignored.
func (s *DiskImageStore) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, URLPrefix) {
		return domain.ValidationError("not an uploaded image: %s", url)
	}
	name := path.Base(strings.TrimPrefix(url, URLPrefix))
	if name == "." || name == "/" || name == ".." {
		return domain.ValidationError("not an uploaded image: %s", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return domain.StorageError(err, "could not delete image")
	}
	return nil
}

func extensionFor(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp":
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	}
	return ""
}
