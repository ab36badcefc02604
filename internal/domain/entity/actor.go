package entity

import "context"

type actorKey struct{}

// ContextWithActor adjunta al contexto la identidad que ejecuta la operación.
func ContextWithActor(ctx context.Context, actor *Identity) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext devuelve la identidad que ejecuta la operación, o nil.
func ActorFromContext(ctx context.Context) *Identity {
	a, _ := ctx.Value(actorKey{}).(*Identity)
	return a
}
