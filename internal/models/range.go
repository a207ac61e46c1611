package models

// CommitRange is the span of commits the checker examines: everything
// reachable from Head but not from Ancestor.
type CommitRange struct {
	Ancestor string
	Head     string
}

// Spec renders the range in the exclusive-inclusive notation git
// tooling accepts.
func (r CommitRange) Spec() string {
	return r.Ancestor + ".." + r.Head
}
