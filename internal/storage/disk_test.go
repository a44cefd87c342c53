package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")

func newStore(t *testing.T, maxBytes int64) *DiskImageStore {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s, err := NewDiskImageStore(t.TempDir(), maxBytes, logger)
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestSave(t *testing.T) {
	s := newStore(t, 1024)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 100)...)

	url, err := s.Save(context.Background(), domain.ImageUpload{Filename: "mask.PNG", Size: int64(len(content)), Content: bytes.NewReader(content)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/1700000000000-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(s.Dir(), strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(s.Dir(), strings.TrimPrefix(url, URLPrefix)))
	assert.True(t, os.IsNotExist(err))
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := newStore(t, 1024)
	_, err := s.Save(context.Background(), domain.ImageUpload{Filename: "notes.png", Content: strings.NewReader("just some text")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_RejectsOversize(t *testing.T) {
	s := newStore(t, 32)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 64)...)

	// size unknown up front, so the limit is enforced while copying
	_, err := s.Save(context.Background(), domain.ImageUpload{Filename: "big.png", Content: bytes.NewReader(content)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete_RejectsForeignPaths(t *testing.T) {
	s := newStore(t, 32)
	assert.True(t, errors.Is(s.Delete(context.Background(), "/etc/passwd"), domain.ErrValidation))
	assert.NoError(t, s.Delete(context.Background(), "/uploads/missing.png"))
}
