package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/purepath/account-service/internal/domain"
)

// fakeRepo is an in-memory UserRepository for service tests.
type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*domain.User)}
}

func (r *fakeRepo) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *fakeRepo) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeRepo) FindUserByID(id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) SaveUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if stored.Version != user.Version {
		return domain.ErrVersionConflict
	}
	user.Version++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// mustGet returns the stored record directly for assertions.
func (r *fakeRepo) mustGet(email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// fakeProducer records published mail events.
type fakeProducer struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

type publishedMessage struct {
	Key   string
	Value string
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, publishedMessage{Key: string(key), Value: string(value)})
	return nil
}

func (p *fakeProducer) last() *publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.messages) == 0 {
		return nil
	}
	return &p.messages[len(p.messages)-1]
}

func (p *fakeProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

// fakeTokenStore is an in-memory refresh-token whitelist.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string // jti -> userID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = userID
	return nil
}

func (s *fakeTokenStore) Consume(_ context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[tokenID]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.tokens, tokenID)
	return userID, nil
}
