package models

import "fmt"

// RepoTarget identifies the mainline repository the gate compares against.
type RepoTarget struct {
	Namespace string
	Name      string
}

// RemoteURL expands a two-slot URL template with the target's namespace
// and repository name.
func (t RepoTarget) RemoteURL(template string) string {
	return fmt.Sprintf(template, t.Namespace, t.Name)
}

func (t RepoTarget) String() string {
	return t.Namespace + "/" + t.Name
}
