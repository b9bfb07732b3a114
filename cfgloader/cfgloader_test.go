package cfgloader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cqrskit/cfgloader"
)

type database struct {
	Host     string `yaml:"host"     validate:"required"`
	Password string `yaml:"password"                     mask:"true"`
}

type config struct {
	Name     string        `yaml:"name"     validate:"required"`
	Port     int           `yaml:"port"                         default:"8080"`
	Timeout  time.Duration `yaml:"timeout"                      default:"3s"`
	Database database      `yaml:"database"`
}

func writeConfig(t *testing.T, env, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Setenv("ENVIRONMENT", cfgloader.EnvTest)
	t.Setenv("DB_PASSWORD", "s3cret")
	dir := writeConfig(t, cfgloader.EnvTest, `
name: users
database:
  host: localhost
  password: ${DB_PASSWORD}
`)

	cfg, err := cfgloader.Load[config](cfgloader.WithDir(dir), cfgloader.WithSilent())

	require.NoError(t, err)
	assert.Equal(t, config{
		Name:     "users",
		Port:     8080,
		Timeout:  3 * time.Second,
		Database: database{Host: "localhost", Password: "s3cret"},
	}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		content string
	}{
		{name: "unknown environment", env: "moon", content: "name: x"},
		{name: "missing required field", env: cfgloader.EnvLocal, content: "port: 1"},
		{name: "malformed yaml", env: cfgloader.EnvLocal, content: "name: [x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeConfig(t, tc.env, tc.content)

			_, err := cfgloader.Load[config](
				cfgloader.WithDir(dir),
				cfgloader.WithEnvironment(tc.env),
				cfgloader.WithSilent(),
			)

			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidConfig))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := cfgloader.Load[config](
		cfgloader.WithDir(t.TempDir()),
		cfgloader.WithEnvironment(cfgloader.EnvDev),
		cfgloader.WithSilent(),
	)

	require.Error(t, err)
}
