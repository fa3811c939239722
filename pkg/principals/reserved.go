package principals

// Reserved sender names recognized by ReservedResolver.
const (
	ConsoleSender = "console"
	ServerSender  = "server"
)

// ReservedResolver resolves the reserved console and server senders itself
// and delegates every other sender to the wrapped resolver. It pins the
// console/server classification to a closed set of names so the permission
// engine never inspects sender types.
type ReservedResolver struct {
	next Resolver
}

// NewReservedResolver wraps next with reserved-sender handling
func NewReservedResolver(next Resolver) *ReservedResolver {
	return &ReservedResolver{next: next}
}

// ResolvePrincipal implements Resolver
func (r *ReservedResolver) ResolvePrincipal(sender string) (*Principal, error) {
	switch sender {
	case ConsoleSender:
		return &Principal{Name: ConsoleSender, Kind: KindConsole}, nil
	case ServerSender:
		return &Principal{Name: ServerSender, Kind: KindServer}, nil
	}
	if r.next == nil {
		return nil, ErrPrincipalNotFound
	}
	return r.next.ResolvePrincipal(sender)
}
