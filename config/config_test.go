package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: test\n")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", conf.App.Env)
	assert.Equal(t, "info", conf.App.LogLevel)
	assert.Equal(t, 8080, conf.Server.Http)
	assert.Equal(t, int64(7200), conf.Jwt.ExpiresIn)
	assert.Equal(t, "ROLE_USER", conf.Account.MainRole)
	assert.Equal(t, "ROLE_ADMIN", conf.Account.AdminRole)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
mysql:
  host: db.internal
  port: 3306
  username: margin
  password: from-file
  database: margin
jwt:
  secret: file-secret
`)
	t.Setenv("MYSQL_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.MySQL.Password)
	assert.Equal(t, "env-secret", conf.Jwt.Secret)
	assert.Equal(t, "db.internal", conf.MySQL.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestMySQL_Dsn(t *testing.T) {
	m := MySQL{Host: "localhost", Port: 3306, Username: "u", Password: "p", Database: "margin"}
	assert.Equal(t, "u:p@tcp(localhost:3306)/margin?charset=utf8mb4&parseTime=True&loc=Local", m.Dsn())
}

func TestNew_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		New(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
