package core

import "errors"

// Failure classes of a gate run. Each is wrapped with the underlying
// cause and matched with errors.Is.
var (
	// ErrRemoteRegistration means the temporary remote could not be added.
	ErrRemoteRegistration = errors.New("temporary remote registration failed")

	// ErrFetch means the mainline branch could not be fetched.
	ErrFetch = errors.New("mainline fetch failed")

	// ErrNoMergeBase means the branch shares no history with the mainline.
	ErrNoMergeBase = errors.New("no common ancestor with mainline")

	// ErrChecker means the checker command could not be launched.
	ErrChecker = errors.New("checker could not be run")

	// ErrCleanup means the temporary remote could not be removed again.
	ErrCleanup = errors.New("temporary remote removal failed")
)
