package apiadmin

import (
	"context"

	"github.com/mounirtms/showcase/service"
)

const ContextServicerKey = "0ef1a2b8-6c3f-11ef-a4a4-6b9cd2bd7a31"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}
