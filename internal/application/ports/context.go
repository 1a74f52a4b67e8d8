package ports

import "context"

type ctxKey int

const (
	tokenKey ctxKey = iota
	transactionIDKey
)

// ContextWithToken guarda el bearer token del llamador para reenviarlo a servicios remotos.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext devuelve el bearer token guardado con ContextWithToken ("" si no hay).
func TokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}

// ContextWithTransactionID asocia el id de transacción del movimiento a las llamadas remotas.
func ContextWithTransactionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, transactionIDKey, id)
}

// TransactionIDFromContext devuelve el id de transacción ("" si no hay).
func TransactionIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(transactionIDKey).(string)
	return s
}
