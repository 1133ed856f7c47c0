package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "agrotrade/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaultsAndUsers(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s3cret"
users:
  - username: producer1
    password_hash: "$2a$10$abcdefghijklmnopqrstuv"
    role: producer
  - username: buyer1
    password_hash: "$2a$10$abcdefghijklmnopqrstuv"
    role: buyer
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24, cfg.JWT.TTLHours)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)

	users := cfg.DirectoryUsers()
	require.Len(t, users, 2)
	assert.Equal(t, entity.RoleProducer, users[0].Role)
	assert.Equal(t, entity.RoleBuyer, users[1].Role)
}

func TestLoadRejectsUnknownRole(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s3cret"
users:
  - username: admin1
    password_hash: "$2a$10$abcdefghijklmnopqrstuv"
    role: admin
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown role")
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "secret")
}

func TestEnvOverridesSecret(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "from-file"
`)
	t.Setenv("AGROTRADE_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}
