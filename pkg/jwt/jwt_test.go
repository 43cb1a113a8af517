package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testActor  = "00000000-0000-0000-0000-000000000001"
	testIssuer = "almacen-pro-test"
	testExpMin = 60
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testActor, "tenant-tok", "store-tok", "bodeguero", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testActor, claims.ActorID)
	assert.Equal(t, "tenant-tok", claims.TenantToken)
	assert.Equal(t, "store-tok", claims.StoreToken)
	assert.Equal(t, "bodeguero", claims.Role)
}

// Credencial sin tienda seleccionada: StoreToken vacío es válido.
func TestJWT_SinStoreToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testActor, "tenant-tok", "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, claims.StoreToken)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testSecret, testActor, "tenant-tok", "", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testActor, "tenant-tok", "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_ClaimsIncompletos_RetornaError(t *testing.T) {
	// Sin tenant_token la credencial no sirve para resolver contexto.
	tok, err := pkgjwt.Generate(testSecret, testActor, "", "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestJWT_TokenMalformado_RetornaError(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
