package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardScene = "../../pkg/scene/testdata/guard.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", guardScene)
	require.NoError(t, err)
	assert.Contains(t, out, "Scene is valid!")
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree", guardScene)
	require.NoError(t, err)
	assert.Contains(t, out, "● Guard (single_required)")
	assert.Contains(t, out, "● rest (default)")
	assert.Contains(t, out, "○ patrol")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", guardScene)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "class rest selected;")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "playbox version ")
}

func TestMissingScene(t *testing.T) {
	_, err := execute(t, "tree")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scene file given")
}
