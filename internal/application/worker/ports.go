package worker

import (
	"io"

	"github.com/Mounadi05/taskmaster/internal/domain/config"
)

// LogOpener resolves a program's stdout/stderr declarations into open
// writers for one spawn attempt. Infrastructure provides the concrete
// adapter.
type LogOpener interface {
	Open(stream config.StdStream) (io.WriteCloser, error)
}

// IdentityResolver resolves a user/group name to numeric ids, the
// credential-lookup half of a worker's start precondition.
type IdentityResolver interface {
	Resolve(user, group string) (uid, gid int, err error)
}
