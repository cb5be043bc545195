package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// SessionOpener returns the durable store that belongs to one operator.
type SessionOpener func(operatorID int64) repository.SessionStore

// SessionPool keeps one SessionUseCase per operator, restored from its store
// the first time it is asked for.
type SessionPool struct {
	adminRepo repository.AdminRepository
	open      SessionOpener

	mu       sync.Mutex
	sessions map[int64]SessionUseCase
}

// NewSessionPool creates an empty pool.
func NewSessionPool(adminRepo repository.AdminRepository, open SessionOpener) *SessionPool {
	return &SessionPool{
		adminRepo: adminRepo,
		open:      open,
		sessions:  make(map[int64]SessionUseCase),
	}
}

// Get returns the session of operatorID, restoring it on first use.
func (p *SessionPool) Get(ctx context.Context, operatorID int64) (SessionUseCase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if session, ok := p.sessions[operatorID]; ok {
		return session, nil
	}

	session := NewSessionUseCase(p.adminRepo, p.open(operatorID))
	if err := session.Restore(ctx); err != nil {
		return nil, err
	}
	p.sessions[operatorID] = session
	return session, nil
}

// Preload restores the sessions of operatorIDs so that RevalidateAll sees
// them before those operators come back. It returns how many are logged in.
func (p *SessionPool) Preload(ctx context.Context, operatorIDs []int64) int {
	active := 0
	for _, id := range operatorIDs {
		session, err := p.Get(ctx, id)
		if err != nil {
			zap.L().Error("restore admin session", zap.Int64("operator", id), zap.Error(err))
			continue
		}
		if session.IsAuthenticated() {
			active++
		}
	}
	return active
}

// RevalidateAll revalidates every authenticated session and returns how
// many expired.
func (p *SessionPool) RevalidateAll(ctx context.Context) int {
	p.mu.Lock()
	active := make(map[int64]SessionUseCase, len(p.sessions))
	for id, session := range p.sessions {
		if session.IsAuthenticated() {
			active[id] = session
		}
	}
	p.mu.Unlock()

	expired := 0
	for id, session := range active {
		if err := ctx.Err(); err != nil {
			break
		}
		if !session.Revalidate(ctx) {
			zap.L().Info("admin session expired", zap.Int64("operator", id))
			expired++
		}
	}
	return expired
}
