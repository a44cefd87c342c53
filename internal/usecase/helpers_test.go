package usecase

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, evt := range p.events {
		out[i] = evt.Type
	}
	return out
}

type fakeImageStore struct {
	saved   []string
	deleted []string
	err     error
}

func (s *fakeImageStore) Save(_ context.Context, upload domain.ImageUpload) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	url := "/uploads/" + upload.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeImageStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

var errBackendDown = errors.New("backend down")

// failingCartSaves wraps a cart repository and fails Save once armed.
type failingCartSaves struct {
	domain.CartRepository
	fail bool
}

func (r *failingCartSaves) Save(ctx context.Context, cart *domain.Cart) error {
	if r.fail {
		return domain.StorageError(errBackendDown, "could not save cart")
	}
	return r.CartRepository.Save(ctx, cart)
}

type failingCraftCreates struct {
	domain.CraftRepository
}

func (r *failingCraftCreates) Create(context.Context, *domain.Craft) error {
	return domain.StorageError(errBackendDown, "could not create craft")
}
