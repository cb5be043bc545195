package usecase

import (
	"context"
	"net/http"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	flagTrue  = "true"
	flagFalse = "false"
)

// SessionUseCase is the admin login state of one operator. It starts
// Unauthenticated; Restore loads what a previous run persisted.
type SessionUseCase interface {
	// Restore loads the persisted flag and profile without asking the backend
	Restore(ctx context.Context) error

	// Login checks the password against the backend. A rejected password is
	// an *AuthError; any other error is a transport failure.
	Login(ctx context.Context, password string) error

	// Logout asks the backend to end the session. It reports whether the
	// session actually ended.
	Logout(ctx context.Context) bool

	// UpdateProfile changes the admin contact details and keeps what the
	// backend answers
	UpdateProfile(ctx context.Context, email, phone string) bool

	// Revalidate asks the backend whether the session is still valid and
	// expires it if not. It reports whether the session is still active.
	Revalidate(ctx context.Context) bool

	IsAuthenticated() bool
	Session() entity.AdminSession
}

type sessionUseCase struct {
	adminRepo repository.AdminRepository
	store     repository.SessionStore

	mu      sync.RWMutex
	session entity.AdminSession
}

// NewSessionUseCase creates an Unauthenticated session bound to store.
func NewSessionUseCase(adminRepo repository.AdminRepository, store repository.SessionStore) SessionUseCase {
	return &sessionUseCase{
		adminRepo: adminRepo,
		store:     store,
	}
}

func (u *sessionUseCase) Restore(ctx context.Context) error {
	session, drift, err := u.load(ctx)
	if err != nil {
		return err
	}

	if drift {
		zap.L().Warn("session flag set without a valid profile, resetting")
		if err := u.save(ctx, session); err != nil {
			return err
		}
	}

	u.mu.Lock()
	u.session = session
	u.mu.Unlock()
	return nil
}

func (u *sessionUseCase) Login(ctx context.Context, password string) error {
	result, err := u.adminRepo.Login(ctx, password)
	if err != nil {
		return errors.Wrap(err, "login request")
	}

	if result == nil || !result.Admin.Authenticated() {
		message := DefaultAuthFailure
		if result != nil && result.Message != "" {
			message = result.Message
		}
		return &AuthError{Message: message}
	}

	u.transition(ctx, entity.AdminSession{Authenticated: true, Profile: result.Admin})
	zap.L().Info("admin logged in", zap.String("email", result.Admin.Email))
	return nil
}

func (u *sessionUseCase) Logout(ctx context.Context) bool {
	profile, err := u.adminRepo.Logout(ctx)
	if err != nil {
		zap.L().Error("logout", zap.Error(err))
		return false
	}
	if !profile.LoggedOut() {
		zap.L().Warn("logout not confirmed by backend, session kept")
		return false
	}

	u.transition(ctx, entity.AdminSession{})
	zap.L().Info("admin logged out")
	return true
}

func (u *sessionUseCase) UpdateProfile(ctx context.Context, email, phone string) bool {
	current := u.Session()
	if !current.Authenticated {
		return false
	}

	profile, err := u.adminRepo.EditProfile(ctx, email, phone)
	if err != nil {
		zap.L().Error("edit admin profile", zap.Error(err))
		return false
	}

	updated := *profile
	if updated.Auth == nil {
		updated.Auth = current.Profile.Auth
	}
	u.transition(ctx, entity.AdminSession{Authenticated: true, Profile: &updated})
	return true
}

func (u *sessionUseCase) Revalidate(ctx context.Context) bool {
	if !u.IsAuthenticated() {
		return false
	}

	profile, err := u.adminRepo.Profile(ctx)
	if err != nil {
		var status interface{ HTTPStatus() int }
		if errors.As(err, &status) &&
			(status.HTTPStatus() == http.StatusUnauthorized || status.HTTPStatus() == http.StatusForbidden) {
			zap.L().Info("admin session expired on the backend", zap.Int("status", status.HTTPStatus()))
			u.transition(ctx, entity.AdminSession{})
			return false
		}
		zap.L().Warn("session revalidation failed, keeping session", zap.Error(err))
		return true
	}

	if profile.LoggedOut() {
		zap.L().Info("admin session ended on the backend")
		u.transition(ctx, entity.AdminSession{})
		return false
	}
	return true
}

func (u *sessionUseCase) IsAuthenticated() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.session.Authenticated
}

func (u *sessionUseCase) Session() entity.AdminSession {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s := u.session
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}

// transition replaces the in-memory session and persists it. A storage
// failure is logged; the in-memory state still changes.
func (u *sessionUseCase) transition(ctx context.Context, session entity.AdminSession) {
	u.mu.Lock()
	u.session = session
	u.mu.Unlock()

	if err := u.save(ctx, session); err != nil {
		zap.L().Error("persist admin session", zap.Error(err))
	}
}

// load reads the persisted session. drift is true when the flag claims a
// login but the profile is missing or unreadable.
func (u *sessionUseCase) load(ctx context.Context) (session entity.AdminSession, drift bool, err error) {
	flag, _, err := u.store.Get(ctx, repository.SessionAuthKey)
	if err != nil {
		return entity.AdminSession{}, false, errors.Wrap(err, "read session flag")
	}
	if flag != flagTrue {
		return entity.AdminSession{}, false, nil
	}

	raw, ok, err := u.store.Get(ctx, repository.SessionProfileKey)
	if err != nil {
		return entity.AdminSession{}, false, errors.Wrap(err, "read session profile")
	}
	if !ok || raw == "" {
		return entity.AdminSession{}, true, nil
	}

	var profile entity.AdminProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		zap.L().Warn("persisted admin profile is corrupt", zap.Error(err))
		return entity.AdminSession{}, true, nil
	}
	return entity.AdminSession{Authenticated: true, Profile: &profile}, false, nil
}

func (u *sessionUseCase) save(ctx context.Context, session entity.AdminSession) error {
	if !session.Authenticated || session.Profile == nil {
		if err := u.store.Set(ctx, repository.SessionAuthKey, flagFalse); err != nil {
			return errors.Wrap(err, "write session flag")
		}
		return errors.Wrap(u.store.Delete(ctx, repository.SessionProfileKey), "delete session profile")
	}

	raw, err := json.Marshal(session.Profile)
	if err != nil {
		return errors.Wrap(err, "encode admin profile")
	}
	if err := u.store.Set(ctx, repository.SessionProfileKey, string(raw)); err != nil {
		return errors.Wrap(err, "write session profile")
	}
	return errors.Wrap(u.store.Set(ctx, repository.SessionAuthKey, flagTrue), "write session flag")
}
