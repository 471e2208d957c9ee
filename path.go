package saori

import "github.com/ukagaka-dev/saori-sdk/internal/procstate"

// Path returns the module's own file path, recorded when the host called
// one of the load entry points. Before that it reports ok=false. Safe to
// call from any hook, on any host thread.
func Path() (path string, ok bool) {
	return procstate.SharedPath().Read()
}

// LoadUResult returns the outcome the loadu entry point last reported to
// the host, or ok=false if loadu has not run.
func LoadUResult() (result, ok bool) {
	return procstate.SharedLoadUResult().Read()
}
