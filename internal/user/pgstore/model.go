package pgstore

import (
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/pg"
)

type userModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	pg.Timestamps

	ID       string `bun:"id,pk,type:uuid"`
	Email    string `bun:"email,notnull,unique"`
	Name     string `bun:"name,notnull"`
	IsActive bool   `bun:"is_active,notnull"`
}

func toModel(u user.User) *userModel {
	return &userModel{
		Timestamps: pg.Timestamps{CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsActive:   u.IsActive,
	}
}

func (m *userModel) toUser() user.User {
	return user.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
