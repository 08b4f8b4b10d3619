package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckPluginsSplitsNameAndPath(t *testing.T) {
	paths, names, err := parseCheckPlugins([]string{"extra=/usr/local/bin/extra-check"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"extra": "/usr/local/bin/extra-check"}, paths)
	assert.Equal(t, []string{"extra"}, names)
}

func TestParseCheckPluginsRejectsMissingEquals(t *testing.T) {
	_, _, err := parseCheckPlugins([]string{"no-equals-sign"})

	assert.Error(t, err)
}

func TestParseCheckPluginsRejectsEmptyNameOrPath(t *testing.T) {
	_, _, err := parseCheckPlugins([]string{"=missing-name"})
	assert.Error(t, err)

	_, _, err = parseCheckPlugins([]string{"missing-path="})
	assert.Error(t, err)
}

func TestParseCheckPluginsEmptyInput(t *testing.T) {
	paths, names, err := parseCheckPlugins(nil)

	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Empty(t, names)
}

func TestArchivesForBuildsOneArchivePerPath(t *testing.T) {
	archives := archivesFor(nil, "old.go", "new.go")

	require.Len(t, archives, 2)
	assert.Equal(t, "old.go", archives[0].Name())
	assert.Equal(t, "new.go", archives[1].Name())
}
