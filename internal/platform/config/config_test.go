package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("POSTING_REQUIRE_BALANCED", true)
	v.SetDefault("UNPOST_ALLOWED_ROLES", "1,2")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.PostingRequireBalanced)
	assert.Equal(t, []int{1, 2}, cfg.UnpostAllowedRoles)
	assert.NotEmpty(t, cfg.JWTSecret, "a development secret is filled in")
}

func TestFromViper_ProductionNeedsSecret(t *testing.T) {
	v := viper.New()
	v.Set("IS_PRODUCTION", true)

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestParseRoles(t *testing.T) {
	roles, err := parseRoles(" 1, 2 ,,5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, roles)

	roles, err = parseRoles("")
	require.NoError(t, err)
	assert.Empty(t, roles)

	_, err = parseRoles("1,admin")
	assert.Error(t, err)
}
