package worker

import "os"

// processEnviron returns the daemon's own environment, indirected behind a
// var so tests can override it deterministically.
var processEnviron = os.Environ
