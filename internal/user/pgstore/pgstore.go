// Package pgstore stores users in PostgreSQL through bun.
package pgstore

import (
	"context"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/pg"
)

const (
	CodeIncorrectRowsAffection = "INCORRECT_ROWS_AFFECTION"

	defaultOrder = "u.created_at ASC"
)

// conflictCodes maps unique constraint names to domain codes.
//
//nolint:gochecknoglobals // read-only lookup
var conflictCodes = map[string]string{
	"users_email_key": user.CodeEmailAlreadyExists,
}

// Repository is a user.Repository backed by a users table.
type Repository struct {
	idb bun.IDB
}

var _ user.Repository = (*Repository)(nil)

// New creates a Repository. idb may be a *bun.DB or a bun.Tx.
func New(idb bun.IDB) *Repository {
	return &Repository{idb: idb}
}

// CreateSchema creates the users table when it does not exist.
func CreateSchema(ctx context.Context, idb bun.IDB) error {
	q := idb.NewCreateTable().Model((*userModel)(nil)).IfNotExists()
	if _, err := q.Exec(ctx); err != nil {
		return pg.QueryError(err, q)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, "u.id = ?", id, "user_id")
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, "u.email = ?", strings.ToLower(strings.TrimSpace(email)), "email")
}

func (r *Repository) findOne(ctx context.Context, where, value, by string) (user.User, error) {
	m := new(userModel)
	q := r.idb.NewSelect().Model(m).Where(where, value)

	if err := q.Scan(ctx); err != nil {
		if pg.IsNotFound(err) {
			return user.User{}, user.NotFound(by, value)
		}
		return user.User{}, pg.QueryError(err, q)
	}
	return m.toUser(), nil
}

// Save inserts u or, when the id exists, updates its mutable columns.
func (r *Repository) Save(ctx context.Context, u user.User) error {
	q := r.idb.NewInsert().
		Model(toModel(u)).
		On("CONFLICT (id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("name = EXCLUDED.name").
		Set("is_active = EXCLUDED.is_active").
		Set("updated_at = EXCLUDED.updated_at")

	if _, err := q.Exec(ctx); err != nil {
		if code, ok := conflictCodes[pg.ConstraintName(err)]; ok && pg.IsConflict(err) {
			return errx.New(
				"conflict while saving user",
				errx.WithCode(code),
				errx.WithType(errx.T_Conflict),
				errx.WithDetails(pg.ErrorDetails(err, q)),
			)
		}
		return pg.QueryError(err, q)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	q := r.idb.NewDelete().Model((*userModel)(nil)).Where("id = ?", id)

	res, err := q.Exec(ctx)
	if err != nil {
		return pg.QueryError(err, q)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return pg.QueryError(err, q)
	}

	switch affected {
	case 0:
		return user.NotFound("user_id", id)
	case 1:
		return nil
	default:
		return errx.New(
			"unexpected number of deleted users",
			errx.WithCode(CodeIncorrectRowsAffection),
			errx.WithDetails(errx.D{"user_id": id, "rows_affected": affected}),
		)
	}
}

func (r *Repository) List(ctx context.Context, f user.Filter, p pagination.Params) ([]user.User, error) {
	var models []userModel
	allowed := lo.Map(user.SortFields, func(field string, _ int) string { return "u." + field })
	p.SortBy = "u." + p.SortBy

	q := r.idb.NewSelect().Model(&models)
	q = applyFilter(q, f).
		OrderExpr(p.OrderBy(defaultOrder, allowed...)).
		OrderExpr("u.id ASC").
		Limit(p.Limit).
		Offset(p.Offset())

	if err := q.Scan(ctx); err != nil {
		return nil, pg.QueryError(err, q)
	}

	return lo.Map(models, func(m userModel, _ int) user.User { return m.toUser() }), nil
}

func (r *Repository) Count(ctx context.Context, f user.Filter) (int64, error) {
	q := applyFilter(r.idb.NewSelect().Model((*userModel)(nil)), f)

	n, err := q.Count(ctx)
	if err != nil {
		return 0, pg.QueryError(err, q)
	}
	return int64(n), nil
}

func applyFilter(q *bun.SelectQuery, f user.Filter) *bun.SelectQuery {
	if f.Active != nil {
		q = q.Where("u.is_active = ?", *f.Active)
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("u.name ILIKE ?", pattern).WhereOr("u.email ILIKE ?", pattern)
		})
	}
	return q
}
