package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/facturas-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "facturas-api-test"
)

func TestGenerateYParse(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "u1", "ana@example.com", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "ana@example.com", email)
}

func TestParse_RechazaFirmaIncorrecta(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "u1", "ana@example.com", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", token)
	assert.Error(t, err, "un token firmado con otro secreto no debe validar")
}

func TestParse_RechazaTokenExpirado(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, "u1", "ana@example.com", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "un token expirado no debe validar")
}

func TestGenerate_RequiereSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", "ana@example.com", testIssuer, 60)
	assert.Error(t, err)
}
