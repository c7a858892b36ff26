package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "k-1", "vendedor", "kiosco-api", 5)
	require.NoError(t, err)

	userID, kioscoID, role, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "k-1", kioscoID)
	assert.Equal(t, "vendedor", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "k-1", "admin", "kiosco-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "k-1", "admin", "kiosco-api", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestParse_SinKiosco(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "", "admin", "kiosco-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}
