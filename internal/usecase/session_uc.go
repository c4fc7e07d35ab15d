package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/shopmarket/internal/domain"
)

// lockStripes bounds the number of session mutexes. Sessions whose ids
// hash to the same stripe serialize against each other.
const lockStripes = 256

// SessionUC is the single writer of per-session state. Every mutation runs
// load -> fn -> save while holding the session's lock.
type SessionUC struct {
	Store domain.SnapshotRepo
	Now   domain.Clock

	locks [lockStripes]sync.Mutex
}

func (uc *SessionUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *SessionUC) lock(sid string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	return &uc.locks[h.Sum32()%lockStripes]
}

func (uc *SessionUC) load(ctx context.Context, sid string) (*domain.SessionState, error) {
	raw, err := uc.Store.Load(ctx, domain.SessionKey(sid))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewSessionState(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState(raw)
}

func decodeState(raw []byte) (*domain.SessionState, error) {
	st := domain.NewSessionState()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if st.Cart == nil {
		st.Cart = domain.Cart{}
	}
	if st.Wishlist == nil {
		st.Wishlist = domain.Wishlist{}
	}
	if st.Orders == nil {
		st.Orders = domain.OrderLog{}
	}
	return st, nil
}

// View returns the current state of a session. Unknown sessions read as a
// fresh state and are not persisted.
func (uc *SessionUC) View(ctx context.Context, sid string) (*domain.SessionState, error) {
	mu := uc.lock(sid)
	mu.Lock()
	defer mu.Unlock()
	return uc.load(ctx, sid)
}

// Update applies fn to the session state and persists the result. Nothing is
// saved when fn fails.
func (uc *SessionUC) Update(ctx context.Context, sid string, fn func(*domain.SessionState) error) (*domain.SessionState, error) {
	mu := uc.lock(sid)
	mu.Lock()
	defer mu.Unlock()
	st, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := uc.Store.Save(ctx, domain.SessionKey(sid), raw); err != nil {
		return nil, err
	}
	return st, nil
}

// ForEach visits every stored session. The states passed to fn are copies;
// changes to them are not saved.
func (uc *SessionUC) ForEach(ctx context.Context, fn func(sid string, st *domain.SessionState) error) error {
	return uc.Store.Scan(ctx, domain.SessionKeyPrefix, func(key string, raw []byte) error {
		st, err := decodeState(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return fn(strings.TrimPrefix(key, domain.SessionKeyPrefix), st)
	})
}

func (uc *SessionUC) Forget(ctx context.Context, sid string) error {
	mu := uc.lock(sid)
	mu.Lock()
	defer mu.Unlock()
	err := uc.Store.Delete(ctx, domain.SessionKey(sid))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// ToggleTheme flips the dark mode flag and reports the new value.
func (uc *SessionUC) ToggleTheme(ctx context.Context, sid string) (bool, error) {
	st, err := uc.Update(ctx, sid, func(st *domain.SessionState) error {
		st.DarkMode = !st.DarkMode
		return nil
	})
	if err != nil {
		return false, err
	}
	return st.DarkMode, nil
}

func (uc *SessionUC) AddPaymentMethod(ctx context.Context, sid string, kind domain.PaymentKind, name string, makeDefault bool) (domain.PaymentMethod, error) {
	if _, ok := domain.ParsePaymentKind(string(kind)); !ok {
		return domain.PaymentMethod{}, fmt.Errorf("unknown payment method %q", kind)
	}
	m := domain.PaymentMethod{
		ID:        string(kind) + "-" + uuid.NewString()[:8],
		Kind:      kind,
		Name:      strings.TrimSpace(name),
		IsDefault: makeDefault,
	}
	if m.Name == "" {
		m.Name = kind.DisplayName()
	}
	_, err := uc.Update(ctx, sid, func(st *domain.SessionState) error {
		if len(st.PaymentMethods) == 0 {
			m.IsDefault = true
		}
		if m.IsDefault {
			for i := range st.PaymentMethods {
				st.PaymentMethods[i].IsDefault = false
			}
		}
		st.PaymentMethods = append(st.PaymentMethods, m)
		return nil
	})
	return m, err
}

func (uc *SessionUC) RemovePaymentMethod(ctx context.Context, sid, id string) error {
	_, err := uc.Update(ctx, sid, func(st *domain.SessionState) error {
		if !st.RemovePaymentMethod(id) {
			return domain.ErrNotFound
		}
		return nil
	})
	return err
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
