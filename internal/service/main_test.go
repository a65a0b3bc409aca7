package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"shoplist/internal/auth"
	"shoplist/internal/models"
	"shoplist/internal/repository"
	"shoplist/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret-at-least-32-chars"

type recordedEvent struct {
	UserID  string
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) PublishUser(_ context.Context, userID, eventType string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{UserID: userID, Type: eventType, Payload: payload})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	clock      time.Time
	users      repository.UserRepository
	catRepo    repository.CategoryRepository
	auth       *AuthService
	categories *CategoryService
	items      *ItemService
	events     *recordingPublisher
}

func (h *harness) now() time.Time { return h.clock }

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	h := &harness{
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		events: &recordingPublisher{},
	}

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(testSecret, auth.WithClock(h.now))
	require.NoError(t, err)

	h.users = repository.NewUserRepository(db, nil)
	h.auth = NewAuthService(h.users, hasher, tokens)
	h.auth.now = h.now
	h.catRepo = repository.NewCategoryRepository(db, nil)
	h.categories = NewCategoryService(h.catRepo, h.events)
	h.categories.now = h.now
	h.items = NewItemService(repository.NewItemRepository(db), h.events)
	h.items.now = h.now
	return h
}

func (h *harness) register(t *testing.T, username, password string) *AuthResult {
	t.Helper()
	res, err := h.auth.Register(context.Background(), CredentialsInput{Username: username, Password: password})
	require.NoError(t, err)
	return res
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, models.CodeOf(err), "unexpected error: %v", err)
}
