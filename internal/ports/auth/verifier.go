package auth

import "context"

// AuthVerifier verifica un token bearer y devuelve claims o error.
// Se verifica contra el proveedor en CADA request (sin cache de sesión).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
