package port

// Client is the send capability of one connected peer. Sends are
// fire-and-forget and must never block the caller; Reachable reports
// whether the underlying transport is still open.
type Client interface {
	Send(v any) error
	Reachable() bool
	Close() error
}
