// Package credentials provides the infrastructure adapter that resolves
// program-declared user/group names to numeric ids.
package credentials

import (
	"fmt"
	"os/user"
	"strconv"

	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// Resolver implements worker.IdentityResolver via os/user.
type Resolver struct{}

// New builds a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve looks up userName and groupName, accepting either a name or a
// numeric id for each, mirroring os/user's own lookup fallbacks.
func (r *Resolver) Resolve(userName, groupName string) (uid, gid int, err error) {
	uid, gid = -1, -1

	if userName != "" {
		u, lookupErr := lookupUser(userName)
		if lookupErr != nil {
			return 0, 0, fmt.Errorf("%w: %s", domain.ErrUnknownUser, userName)
		}
		uid, err = strconv.Atoi(u.Uid)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s", domain.ErrUnknownUser, userName)
		}
		if gidFromUser, convErr := strconv.Atoi(u.Gid); convErr == nil {
			gid = gidFromUser
		}
	}

	if groupName != "" {
		g, lookupErr := lookupGroup(groupName)
		if lookupErr != nil {
			return 0, 0, fmt.Errorf("%w: %s", domain.ErrUnknownGroup, groupName)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s", domain.ErrUnknownGroup, groupName)
		}
	}

	return uid, gid, nil
}

func lookupUser(nameOrID string) (*user.User, error) {
	if u, err := user.Lookup(nameOrID); err == nil {
		return u, nil
	}
	return user.LookupId(nameOrID)
}

func lookupGroup(nameOrID string) (*user.Group, error) {
	if g, err := user.LookupGroup(nameOrID); err == nil {
		return g, nil
	}
	return user.LookupGroupId(nameOrID)
}
