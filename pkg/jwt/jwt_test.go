package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "vendedor", "backoffice-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, "backoffice-api", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "vendedor", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "", "", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", "", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "", "", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, "", token)
	assert.Error(t, err)
}

func TestParse_WrongIssuer(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "", "otro-emisor", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, "backoffice-api", token)
	assert.Error(t, err)
}

func TestEmptySecretIsRejected(t *testing.T) {
	_, err := jwt.Generate("", "u", "", "", 5)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "", "x.y.z")
	assert.Error(t, err)
}
