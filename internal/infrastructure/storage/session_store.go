package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

const operatorKeyPrefix = "tg:"

// Store kinds accepted by OpenSessionStore.
const (
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

// OpenSessionStore builds the durable session store selected in config.
func OpenSessionStore(kind, path string) (repository.SessionStore, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindSQLite:
		return NewSQLiteSessionStore(path)
	case KindBolt:
		return NewBoltSessionStore(path)
	case KindMemory:
		return NewMemorySessionStore(), nil
	default:
		return nil, errors.Errorf("unknown session store %q", kind)
	}
}

type scopedSessionStore struct {
	prefix string
	parent repository.SessionStore
}

// Scoped returns a view of parent whose keys are prefixed, so several admin
// sessions can share one file. Closing the view leaves parent open.
func Scoped(parent repository.SessionStore, prefix string) repository.SessionStore {
	return &scopedSessionStore{prefix: prefix, parent: parent}
}

func (s *scopedSessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.parent.Get(ctx, s.prefix+key)
}

func (s *scopedSessionStore) Set(ctx context.Context, key, value string) error {
	return s.parent.Set(ctx, s.prefix+key, value)
}

func (s *scopedSessionStore) Delete(ctx context.Context, key string) error {
	return s.parent.Delete(ctx, s.prefix+key)
}

func (s *scopedSessionStore) Keys(ctx context.Context) ([]string, error) {
	all, err := s.parent.Keys(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, key := range all {
		if strings.HasPrefix(key, s.prefix) {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
	}
	return keys, nil
}

func (s *scopedSessionStore) Close() error {
	return nil
}

// OperatorPrefix is the Scoped prefix of one Telegram operator.
func OperatorPrefix(operatorID int64) string {
	return fmt.Sprintf("%s%d:", operatorKeyPrefix, operatorID)
}

// OperatorIDs lists the operators that have anything persisted in parent
// under an OperatorPrefix, in ascending order.
func OperatorIDs(ctx context.Context, parent repository.SessionStore) ([]int64, error) {
	keys, err := parent.Keys(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var ids []int64
	for _, key := range keys {
		rest, ok := strings.CutPrefix(key, operatorKeyPrefix)
		if !ok {
			continue
		}
		raw, _, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
