package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, Verify("secret1", hash))
	assert.False(t, Verify("secret2", hash))
	assert.False(t, Verify("secret1", "not-a-hash"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate("secret"))
	assert.True(t, Validate("a-much-longer-password"))

	assert.False(t, Validate(""))
	assert.False(t, Validate("12345"))
}
