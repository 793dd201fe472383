package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/playbox/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, src string) *scene.Scene {
	t.Helper()
	doc, err := scene.Parse([]byte(src))
	require.NoError(t, err)
	sc, err := scene.NewBuilder().Build(doc)
	require.NoError(t, err)
	return sc
}

func TestValidateScene_Clean(t *testing.T) {
	sc, err := scene.NewBuilder().LoadFile("../../pkg/scene/testdata/guard.yaml")
	require.NoError(t, err)

	issues := ValidateScene(sc)
	for _, i := range issues {
		assert.NotEqual(t, SeverityError, i.Severity, i.String())
	}
	assert.NoError(t, Err(issues))
}

func TestValidateScene_Findings(t *testing.T) {
	sc := build(t, `
nodes:
  - id: m
    state: {}
    components:
      - {kind: signal, type: enter, signal: never}
    children:
      - id: a
        state: {default: true}
        components:
          - {kind: delayed, type: exit, to: ghost, delay: 1}
          - {kind: emit, signal: lonely}
          - {kind: activate, mode: enable, subjects: [nowhere]}
      - id: b
        state: {}
      - id: other
        children:
          - {id: ghost, state: {}}
`)

	issues := ValidateScene(sc)
	byMessage := make(map[string]Issue)
	for _, i := range issues {
		byMessage[i.Message] = i
	}

	assert.Contains(t, byMessage, "transition on a root state never applies")
	assert.Contains(t, byMessage, "transition destination ghost is not a sibling")
	assert.Contains(t, byMessage, "activate subject nowhere does not exist")
	assert.Contains(t, byMessage, `signal "lonely" has no listener`)

	unreachable := byMessage["state can never be selected"]
	assert.Equal(t, SeverityWarning, unreachable.Severity)

	err := Err(issues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 errors")
}

func TestValidateScene_EmitLoop(t *testing.T) {
	sc := build(t, `
nodes:
  - id: m
    state: {}
    children:
      - id: walk
        state: {default: true}
        components:
          - {kind: emit, signal: to_run}
          - {kind: signal, type: enter, signal: to_walk}
      - id: run
        state: {}
        components:
          - {kind: emit, signal: to_walk}
          - {kind: signal, type: enter, signal: to_run}
      - id: rest
        state: {}
        components:
          - {kind: signal, type: enter, signal: to_run}
`)

	var loops []Issue
	for _, i := range ValidateScene(sc) {
		if strings.Contains(i.Message, "raises itself") {
			loops = append(loops, i)
		}
	}
	require.Len(t, loops, 2)
	assert.Equal(t, SeverityWarning, loops[0].Severity)
	assert.Equal(t, `signal "to_run" raises itself again through emit effects`, loops[0].Message)
	assert.Equal(t, "walk", string(loops[0].StateID))
	assert.NoError(t, Err(ValidateScene(sc)))
}

func TestValidateScene_SiblingDestinationMakesReachable(t *testing.T) {
	sc := build(t, `
nodes:
  - id: m
    state: {}
    children:
      - id: a
        state: {}
        components:
          - {kind: key_press, type: exit, to: b, key: space}
      - id: b
        state: {}
`)

	assert.Empty(t, ValidateScene(sc))
}
