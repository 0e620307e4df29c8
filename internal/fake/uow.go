// Package fake provides an in-memory UnitOfWork for service and handler
// tests. Repositories hand out copies, so state only changes through
// explicit writes, mirroring how the real store behaves.
package fake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/repository"
)

// Store is an in-memory repository.UnitOfWork backed by maps.
type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]account.Account
	byNumber map[string]uuid.UUID
	entries  []account.HistoryEntry
	users    map[uuid.UUID]user.User

	// FailAccountCreates forces that many account inserts to fail with
	// ErrAccountNumberTaken, to exercise the collision retry loop.
	FailAccountCreates int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]account.Account),
		byNumber: make(map[string]uuid.UUID),
		users:    make(map[uuid.UUID]user.User),
	}
}

// Do implements repository.UnitOfWork. The fake has no rollback; services
// must validate before writing, which is exactly the behavior under test.
func (s *Store) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(s)
}

// AccountRepository implements repository.UnitOfWork.
func (s *Store) AccountRepository() (repository.AccountRepository, error) {
	return accountRepo{s}, nil
}

// HistoryRepository implements repository.UnitOfWork.
func (s *Store) HistoryRepository() (repository.HistoryRepository, error) {
	return historyRepo{s}, nil
}

// UserRepository implements repository.UnitOfWork.
func (s *Store) UserRepository() (repository.UserRepository, error) {
	return userRepo{s}, nil
}

// SeedAccount inserts an account directly, bypassing collision simulation.
func (s *Store) SeedAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = *a
	s.byNumber[a.Number] = a.ID
}

// SeedUser inserts a user directly.
func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
}

// SeedEntry appends a history entry directly.
func (s *Store) SeedEntry(e *account.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
}

// Account returns a copy of the stored account, or nil.
func (s *Store) Account(id uuid.UUID) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	return &a
}

// Entries returns copies of all stored history entries for an account, in
// insertion order.
func (s *Store) Entries(accountID uuid.UUID) []account.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []account.HistoryEntry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

type accountRepo struct{ s *Store }

func (r accountRepo) Create(_ context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAccountCreates > 0 {
		r.s.FailAccountCreates--
		return account.ErrAccountNumberTaken
	}
	if _, taken := r.s.byNumber[a.Number]; taken {
		return account.ErrAccountNumberTaken
	}
	r.s.accounts[a.ID] = *a
	r.s.byNumber[a.Number] = a.ID
	return nil
}

func (r accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r accountRepo) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.s.byNumber[number]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return r.get(id)
}

func (r accountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r accountRepo) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.GetByNumber(ctx, number)
}

func (r accountRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Balance = balance
	r.s.accounts[id] = a
	return nil
}

func (r accountRepo) get(id uuid.UUID) (*account.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

type historyRepo struct{ s *Store }

func (r historyRepo) Create(_ context.Context, e *account.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.entries = append(r.s.entries, *e)
	return nil
}

func (r historyRepo) ListByAccount(_ context.Context, accountID uuid.UUID, page repository.Page) ([]*account.HistoryEntry, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []account.HistoryEntry
	for _, e := range r.s.entries {
		if e.AccountID == accountID {
			all = append(all, e)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].TransactionDate.Equal(all[j].TransactionDate) {
			return all[i].TransactionDate.After(all[j].TransactionDate)
		}
		return all[i].ID.String() > all[j].ID.String()
	})
	total := int64(len(all))
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if page.Size > 0 && start+page.Size < end {
		end = start + page.Size
	}
	out := make([]*account.HistoryEntry, 0, end-start)
	for i := start; i < end; i++ {
		cp := all[i]
		out = append(out, &cp)
	}
	return out, total, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrUserUnauthorized
	}
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrUserUnauthorized
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrUserUnauthorized
}
