package user

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/rise-and-shine/cqrskit/pagination"
)

// MemoryRepository keeps users in a map. It is safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return User{}, NotFound("user_id", id)
	}
	return u, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	email = normalizeEmail(email)
	u, ok := lo.Find(lo.Values(r.users), func(u User) bool { return u.Email == email })
	if !ok {
		return User{}, NotFound("email", email)
	}
	return u, nil
}

func (r *MemoryRepository) Save(ctx context.Context, u User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken := lo.SomeBy(lo.Values(r.users), func(other User) bool {
		return other.ID != u.ID && other.Email == u.Email
	})
	if taken {
		return EmailTaken(u.Email)
	}

	r.users[u.ID] = u
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return NotFound("user_id", id)
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, f Filter, p pagination.Params) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := r.matching(f)
	sortUsers(matched, p)

	return lo.Subset(matched, p.Offset(), uint(max(p.Limit, 0))), nil //nolint:gosec // clamped to non-negative
}

func (r *MemoryRepository) Count(ctx context.Context, f Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.matching(f))), nil
}

func (r *MemoryRepository) matching(f Filter) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	return lo.Filter(lo.Values(r.users), func(u User, _ int) bool {
		if f.Active != nil && u.IsActive != *f.Active {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(u.Name), search) || strings.Contains(u.Email, search)
	})
}

// sortUsers orders by the requested field, then by id so pages are stable.
func sortUsers(users []User, p pagination.Params) {
	key := p.SortBy
	if !slices.Contains(SortFields, key) {
		key = "created_at"
	}

	slices.SortFunc(users, func(a, b User) int {
		var c int
		switch key {
		case "name":
			c = cmp.Compare(a.Name, b.Name)
		case "email":
			c = cmp.Compare(a.Email, b.Email)
		case "updated_at":
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if p.Descending() {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.ID, b.ID))
	})
}
