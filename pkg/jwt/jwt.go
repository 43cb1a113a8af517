package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// TenantToken y StoreToken son identificadores cifrados con pkg/idcodec (opacos para el cliente).
// StoreToken es opcional: credenciales emitidas antes de seleccionar tienda, o de
// actores con alcance de tenant completo, no lo llevan.
type Claims struct {
	jwt.RegisteredClaims
	ActorID     string `json:"actor_id"`
	TenantToken string `json:"tenant_token"`
	StoreToken  string `json:"store_token,omitempty"`
	Role        string `json:"role"` // "owner" | "admin" | "bodeguero" | "vendedor"
}

// Generate genera un token JWT firmado con actorID, los claims cifrados de tenant/tienda y el rol.
// storeToken puede ser vacío (credencial sin tienda seleccionada).
func Generate(secret, actorID, tenantToken, storeToken, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		ActorID:     actorID,
		TenantToken: tenantToken,
		StoreToken:  storeToken,
		Role:        role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida la firma y expiración del token y devuelve los claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta;
// el error envuelto de golang-jwt permite distinguir la causa en diagnósticos.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.ActorID == "" || claims.TenantToken == "" {
		return nil, fmt.Errorf("claims incompletos")
	}
	return claims, nil
}
