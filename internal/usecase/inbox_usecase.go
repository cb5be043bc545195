package usecase

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// ConfirmFunc asks the operator to confirm a destructive action.
type ConfirmFunc func(ctx context.Context, message entity.ContactMessage) bool

// ErrMessageNotFound is returned for ids that are not in the inbox.
var ErrMessageNotFound = errors.New("message not found")

// InboxUseCase is the admin view of contact messages. Mark-read and delete
// change the local list directly, without re-listing.
type InboxUseCase interface {
	// Refresh re-fetches the inbox. On failure the current list is kept.
	Refresh(ctx context.Context) bool

	Messages() []entity.ContactMessage

	// Message returns one message of the current list
	Message(id string) (entity.ContactMessage, bool)

	// UnreadCount is derived from the current list
	UnreadCount() int

	// MarkRead marks a message read on the backend first; the local list only
	// changes when the backend accepted it.
	MarkRead(ctx context.Context, id string) error

	// Delete removes a message once confirm agrees and the backend deleted
	// it. A nil confirm counts as declined. It reports whether the message
	// was removed.
	Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error)
}

type inboxUseCase struct {
	contactRepo repository.ContactRepository

	mu       sync.RWMutex
	messages []entity.ContactMessage
}

// NewInboxUseCase creates an empty inbox.
func NewInboxUseCase(contactRepo repository.ContactRepository) InboxUseCase {
	return &inboxUseCase{
		contactRepo: contactRepo,
		messages:    []entity.ContactMessage{},
	}
}

func (u *inboxUseCase) Refresh(ctx context.Context) bool {
	messages, err := u.contactRepo.List(ctx)
	if err != nil {
		zap.L().Error("list contact messages", zap.Error(err))
		return false
	}

	u.mu.Lock()
	u.messages = messages
	u.mu.Unlock()
	return true
}

func (u *inboxUseCase) Messages() []entity.ContactMessage {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]entity.ContactMessage, len(u.messages))
	copy(out, u.messages)
	return out
}

func (u *inboxUseCase) Message(id string) (entity.ContactMessage, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if i := indexOf(u.messages, id); i >= 0 {
		return u.messages[i], true
	}
	return entity.ContactMessage{}, false
}

func (u *inboxUseCase) UnreadCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	count := 0
	for _, m := range u.messages {
		if !m.Read {
			count++
		}
	}
	return count
}

func (u *inboxUseCase) MarkRead(ctx context.Context, id string) error {
	// stage
	u.mu.RLock()
	i := indexOf(u.messages, id)
	var staged entity.ContactMessage
	if i >= 0 {
		staged = u.messages[i]
	}
	u.mu.RUnlock()
	if i < 0 {
		return ErrMessageNotFound
	}
	if staged.Read {
		return nil
	}
	staged.Read = true

	if err := u.contactRepo.SetRead(ctx, id, true); err != nil {
		return errors.Wrapf(err, "mark message %s read", id)
	}

	// commit; the list may have been refreshed meanwhile
	u.mu.Lock()
	if j := indexOf(u.messages, id); j >= 0 {
		u.messages[j].Read = staged.Read
	}
	u.mu.Unlock()
	return nil
}

func (u *inboxUseCase) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	message, ok := u.Message(id)
	if !ok {
		return false, ErrMessageNotFound
	}
	if confirm == nil || !confirm(ctx, message) {
		return false, nil
	}

	if err := u.contactRepo.Delete(ctx, id); err != nil {
		return false, errors.Wrapf(err, "delete message %s", id)
	}

	u.mu.Lock()
	if j := indexOf(u.messages, id); j >= 0 {
		u.messages = append(u.messages[:j:j], u.messages[j+1:]...)
	}
	u.mu.Unlock()
	return true, nil
}

func indexOf(messages []entity.ContactMessage, id string) int {
	for i, m := range messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}
