package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.False(t, exit)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.EditPath)
	assert.Empty(t, cfg.Sets)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.DumpFormat)
	assert.True(t, cfg.Assemble)
}

func TestParse_EditPathSources(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"long flag", []string{"-edits", "conf/"}, "conf/"},
		{"short flag", []string{"-e", "conf/"}, "conf/"},
		{"positional", []string{"conf/"}, "conf/"},
		{"long flag wins over positional", []string{"-edits", "a/", "b/"}, "a/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, _, err := Parse(tc.args, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.EditPath)
		})
	}
}

func TestParse_RepeatableSet(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"-set", "project_name=demo",
		"-set", "tasks.num_tasks=2",
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"project_name=demo", "tasks.num_tasks=2"}, cfg.Sets)
}

func TestParse_Validation(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"bad log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "loud"}, "invalid log-level"},
		{"bad dump format", []string{"-dump", "toml"}, "invalid dump"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	var out bytes.Buffer
	_, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
