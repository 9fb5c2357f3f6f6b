package cli_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform/internal/cli"
	"github.com/aretw0/claimform/internal/testutils"
	"github.com/aretw0/claimform/pkg/domain"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("messages", nil, "")
	fs.String("mappings", "", "")
	fs.String("root", "", "")
	fs.Bool("debug", false, "")
	fs.String("log-level", "", "")
	fs.String("log-format", "text", "")
	return fs
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := testutils.WriteFile(t, "claimform.yaml", `
messages:
  - base.properties
  - overrides.properties
mappings: ./mappings
root: FileBody
`)
	t.Setenv("CLAIMFORM_ROOT", "EnvBody")
	t.Setenv("CLAIMFORM_LOG_LEVEL", "warn")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--mappings", "./flag-mappings"}))

	cfg, err := cli.LoadConfig(viper.New(), path, fs)
	require.NoError(t, err)

	assert.Equal(t, []string{"base.properties", "overrides.properties"}, cfg.Messages)
	assert.Equal(t, "./flag-mappings", cfg.Mappings)
	assert.Equal(t, "EnvBody", cfg.Root)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_CommaSeparatedMessages(t *testing.T) {
	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--messages", "a.properties, b.properties"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := cli.LoadConfig(viper.New(), "", fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.properties", "b.properties"}, cfg.Messages)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := cli.LoadConfig(viper.New(), "does-not-exist.yaml", newFlags())
	assert.Error(t, err)
}

func TestCreateLogger(t *testing.T) {
	_, err := cli.CreateLogger(cli.Config{LogLevel: "loud"})
	assert.Error(t, err)

	logger, err := cli.CreateLogger(cli.Config{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewEngineAndPrintSummary(t *testing.T) {
	messages := testutils.WriteFile(t, "messages.properties", `
about-you.fields=surname
surname.label=Last name
surname.validation.mandatory=true
`)
	logger, err := cli.CreateLogger(cli.Config{})
	require.NoError(t, err)

	eng, err := cli.NewEngine(cli.Config{Messages: []string{messages}}, logger, nil)
	require.NoError(t, err)

	summary, err := eng.Validate("about-you", nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cli.PrintSummary(&buf, "about-you", summary, false))
	assert.Contains(t, buf.String(), "surname\tLast name - You must complete this section")
	assert.Contains(t, buf.String(), "1 problem(s) in about-you")

	buf.Reset()
	require.NoError(t, cli.PrintSummary(&buf, "about-you", domain.NewValidationSummary(), false))
	assert.Contains(t, buf.String(), "about-you is valid")
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, cli.IsTerminal(&buf))
}
