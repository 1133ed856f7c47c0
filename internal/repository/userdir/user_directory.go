// Package userdir provides the read-only user directory collaborator. Users
// come from configuration at startup; the engine never writes them.
package userdir

import (
	"sort"

	entity "agrotrade/internal/domain"
)

type UserDirectory interface {
	GetByUsername(username string) (*entity.User, bool)
	ListByRole(role entity.Role) []entity.User
}

type staticDirectory struct {
	users map[string]entity.User
}

func NewStaticDirectory(users []entity.User) UserDirectory {
	m := make(map[string]entity.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &staticDirectory{users: m}
}

func (d *staticDirectory) GetByUsername(username string) (*entity.User, bool) {
	u, ok := d.users[username]
	if !ok {
		return nil, false
	}
	return &u, true
}

// ListByRole returns users sorted by username so broadcast notification
// order is deterministic.
func (d *staticDirectory) ListByRole(role entity.Role) []entity.User {
	out := make([]entity.User, 0)
	for _, u := range d.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
