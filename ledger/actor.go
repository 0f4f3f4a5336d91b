package ledger

import "context"

// Actors are carried explicitly rather than as process-wide state: the
// engine takes a default actor at construction and individual calls may
// override it through the context.

type actorKey struct{}

// DefaultActor is used when neither the engine nor the context names one.
const DefaultActor = "admin"

// WithActor returns a context that attributes subsequent mutations to name.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFrom returns the actor carried by ctx, or "" if none is set.
func ActorFrom(ctx context.Context) string {
	name, _ := ctx.Value(actorKey{}).(string)
	return name
}
