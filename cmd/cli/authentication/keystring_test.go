package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestCredentialsRoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := GetCredentials()
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, StoreCredentials(&StoredCredentials{Token: "jwt", UserID: "u1", Username: "ana", Role: "user"}))
	creds, err := GetCredentials()
	require.NoError(t, err)
	assert.Equal(t, "jwt", creds.Token)
	assert.Equal(t, "ana", creds.Username)

	require.NoError(t, DeleteCredentials())
	require.NoError(t, DeleteCredentials(), "deleting twice is fine")
}
