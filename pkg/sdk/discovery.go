package sdk

import (
	"fmt"
	"os"

	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/internal/service"
)

// AddrEnv names the environment variable holding a remote daemon address.
const AddrEnv = "ROSTER_ADDR"

// New picks a roster based on the environment.
// It returns the interface, so the app doesn't care if it's local or remote.
func New() (RosterAPI, error) {
	// 1. Prefer a remote daemon when one is configured and answering
	if addr := os.Getenv(AddrEnv); addr != "" {
		client, err := Connect(addr)
		if err == nil {
			return client, nil
		}
		fmt.Fprintf(os.Stderr, "[Roster SDK] %s unreachable (%v), using embedded roster\n", addr, err)
	}

	// 2. Fall back to an embedded roster running in this process
	store := engine.NewMemStore(engine.DefaultUsers())
	return NewLocal(
		service.NewUsers(store, service.EmptyUsersReject, nil),
		service.NewStatus(store),
	), nil
}
