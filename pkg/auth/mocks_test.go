package auth

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/contentstudio/studio/pkg/token"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockStorage) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, recipient, link string, purpose token.Purpose) error {
	args := m.Called(ctx, recipient, link, purpose)
	return args.Error(0)
}

// MockReplayGuard is a mock implementation of ReplayGuard.
type MockReplayGuard struct {
	mock.Mock
}

func (m *MockReplayGuard) Consume(ctx context.Context, id string, until time.Time) error {
	args := m.Called(ctx, id, until)
	return args.Error(0)
}

// recordingNotifier captures sent links for flow tests.
type recordingNotifier struct {
	sent []sentLink
	err  error
}

type sentLink struct {
	recipient string
	link      string
	purpose   token.Purpose
}

func (n *recordingNotifier) Send(_ context.Context, recipient, link string, purpose token.Purpose) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentLink{recipient: recipient, link: link, purpose: purpose})
	return nil
}

func (n *recordingNotifier) last() sentLink {
	return n.sent[len(n.sent)-1]
}
