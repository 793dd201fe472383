package domain

// Field constants shared by the scene loader and the debug surfaces.
const (
	// KeyState is the fixture key holding the state settings of a node.
	KeyState = "state"

	// KeyEntering is the argument injected into registry calls made by effects.
	KeyEntering = "entering"

	// KeyStateID is the argument carrying the id of the state that triggered a call.
	KeyStateID = "state_id"
)
