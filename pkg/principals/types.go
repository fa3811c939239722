package principals

import "errors"

var (
	// ErrPrincipalNotFound is returned when a sender has no known principal
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrInvalidRecord is returned when a principal file cannot be decoded
	ErrInvalidRecord = errors.New("invalid principal record")
)

// Kind classifies a principal. The set is closed: permission checks branch
// on it instead of inspecting sender types at runtime.
type Kind int

const (
	// KindPlayer is an ordinary in-game identity, subject to group checks
	KindPlayer Kind = iota
	// KindConsole is the operator console; it bypasses all permission checks
	KindConsole
	// KindServer is the dedicated-server actor; it passes checks whenever
	// the registry is non-empty
	KindServer
)

// Principal is the resolved identity behind a sender.
type Principal struct {
	// Name is the identity's canonical name (player name, "console", ...)
	Name string

	// Kind classifies the identity
	Kind Kind

	// Group is the identity's current group assignment, if any
	Group string

	// StoredGroup is the group-name attribute persisted with the identity,
	// used as a fallback when no current assignment is set
	StoredGroup string
}

// GroupKey returns the group name the permission engine should use for this
// principal: the current assignment if set, otherwise the stored attribute.
// Empty means no group resolves.
func (p *Principal) GroupKey() string {
	if p.Group != "" {
		return p.Group
	}
	return p.StoredGroup
}

// Resolver resolves an opaque sender identifier to a principal
type Resolver interface {
	// ResolvePrincipal returns the principal behind sender.
	// Returns ErrPrincipalNotFound if the sender has no live identity.
	ResolvePrincipal(sender string) (*Principal, error)
}
