package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaarhub/internal/utils"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("pw123")
	require.NoError(t, err)
	require.NotEqual(t, "pw123", hash)

	assert.True(t, utils.CheckPassword(hash, "pw123"))
	assert.False(t, utils.CheckPassword(hash, "wrong"))
	assert.False(t, utils.CheckPassword("", "pw123"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := utils.HashPassword("pw123")
	require.NoError(t, err)
	second, err := utils.HashPassword("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
