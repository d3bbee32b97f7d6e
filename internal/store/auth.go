package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// mockPassword is the only password the auth stub accepts. Real credential
// checking arrives with the real backend.
const mockPassword = "password"

// RegisterInput is the payload for creating an account through the stub.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Users returns all user accounts.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	return netsim.Run(ctx, s.sim, "Failed to load users", func() ([]model.User, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return cloneOrEmpty(s.users), nil
	})
}

// User returns the user with the given id, or nil.
func (s *Store) User(ctx context.Context, id string) (*model.User, error) {
	return netsim.Run(ctx, s.sim, fmt.Sprintf("Failed to load user with ID: %s", id), func() (*model.User, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if i := indexOf(s.users, func(u model.User) bool { return u.ID == id }); i >= 0 {
			u := s.users[i]
			return &u, nil
		}
		return nil, nil
	})
}

// Login authenticates against the fixed mock password and a known user
// email, returning a fresh bearer session on success.
func (s *Store) Login(ctx context.Context, email, password string) (model.Session, error) {
	return netsim.Run(ctx, s.sim, "Failed to log in", func() (model.Session, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		i := indexOf(s.users, func(u model.User) bool { return u.Email == email })
		if i < 0 || password != mockPassword {
			return model.Session{}, ErrInvalidCredentials
		}
		return newSession(s.users[i]), nil
	})
}

// Register creates a new user-role account, rejecting emails that already
// have one, and returns a session for it.
func (s *Store) Register(ctx context.Context, in RegisterInput) (model.Session, error) {
	return netsim.Run(ctx, s.sim, "Failed to register", func() (model.Session, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if indexOf(s.users, func(u model.User) bool { return u.Email == in.Email }) >= 0 {
			return model.Session{}, fmt.Errorf("%q: %w", in.Email, ErrEmailTaken)
		}

		user := model.User{
			ID:        uuid.NewString(),
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      model.RoleUser,
			CreatedAt: now(),
		}
		s.users = append(s.users, user)
		s.persistLocked(ctx, persist.KeyUsers, s.users)
		return newSession(user), nil
	})
}

func newSession(u model.User) model.Session {
	return model.Session{
		AccessToken: "mock-" + uuid.NewString(),
		TokenType:   "bearer",
		User:        u,
	}
}
