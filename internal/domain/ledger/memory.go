package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type account struct {
	mu      sync.RWMutex
	entries []Entry
	total   int
}

// Memory is a process-local Ledger. Appends for one user are serialized by
// that user's lock; different users never contend.
type Memory struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[uuid.UUID]*account),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) account(userID uuid.UUID, create bool) *account {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[userID]
	if !ok && create {
		a = &account{}
		m.accounts[userID] = a
	}
	return a
}

func (m *Memory) Append(ctx context.Context, userID uuid.UUID, action Action) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if userID == uuid.Nil {
		return Entry{}, ErrUnknownUser
	}
	if err := validateAction(action); err != nil {
		return Entry{}, err
	}

	a := m.account(userID, true)
	a.mu.Lock()
	defer a.mu.Unlock()

	e := Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Seq:        len(a.entries) + 1,
		ActionID:   action.ID,
		ActionName: action.Name,
		Category:   action.Category,
		Points:     action.Points,
		Carbon:     action.Carbon,
		CreatedAt:  m.now(),
	}
	a.entries = append(a.entries, e)
	a.total += e.Points
	return e, nil
}

func (m *Memory) Total(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a := m.account(userID, false)
	if a == nil {
		return 0, nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.total, nil
}

func (m *Memory) Entries(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a := m.account(userID, false)
	if a == nil {
		return []Entry{}, nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out, nil
}
