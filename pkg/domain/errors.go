package domain

import "errors"

// ErrNodeNotFound is returned when a node id is unknown to the scene graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrNotAState is returned when a node exists but carries no state.
var ErrNotAState = errors.New("node is not a state")

// ErrFunctionNotFound is returned when a registry lookup fails.
var ErrFunctionNotFound = errors.New("function not found")

// ErrUnknownComponent is returned by the scene loader for unsupported component kinds.
var ErrUnknownComponent = errors.New("unknown component kind")

// ErrSignalLoop is returned when signals raised from effects nest deeper than
// the tree allows, usually because two states emit each other's signal.
var ErrSignalLoop = errors.New("signal nesting too deep")

// ErrEditorUnavailable is returned when a mutation needs a host that cannot edit the scene.
var ErrEditorUnavailable = errors.New("scene host does not support editing")
