package engine

import (
	"fmt"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
)

// Seed pushes users into dst in order. It works for:
// - the daemon's configured starting roster
// - copying one store's users into another (Seed(dst, src.ListUsers()))
func Seed(dst Store, users []schema.User) error {
	for i, u := range users {
		if u.Name == "" {
			return fmt.Errorf("seed user %d: name is empty", i)
		}
		dst.AppendUser(u)
	}
	return nil
}
