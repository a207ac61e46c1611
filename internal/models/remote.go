package models

import (
	"fmt"
	"os"
)

// tempRemotePrefix starts every remote name the gate registers.
const tempRemotePrefix = "patchgate"

// TempRemote is a remote registered for the duration of a single run.
type TempRemote struct {
	Name string
	URL  string
}

// NewTempRemote builds a remote whose name is unique to this process.
func NewTempRemote(url string) TempRemote {
	return TempRemote{Name: TempRemoteName(os.Getpid()), URL: url}
}

// TempRemoteName derives a per-process remote name. Names from distinct
// pids never collide, so a remote leaked by a killed run cannot shadow
// a later one.
func TempRemoteName(pid int) string {
	return fmt.Sprintf("%s-%d", tempRemotePrefix, pid)
}

// MainlineRef returns the remote-tracking ref of a branch as seen
// through this remote.
func (r TempRemote) MainlineRef(branch string) string {
	return r.Name + "/" + branch
}
