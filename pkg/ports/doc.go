/*
Package ports defines the driven ports (interfaces) between the PlayBox state
engine and the scene runtime that hosts it.

The host owns node lifetime, parent/child ordering and activation flags. The
engine only queries it (SceneGraph) and, for editor-style actions and the
Activate effect, asks it to mutate the scene (SceneEditor).

# Key Interfaces

  - SceneGraph: Read-only structural queries (parent, active children, components).
  - SceneEditor: Structural mutations (instantiate, destroy, activate, attach components).
  - Scene: Both of the above, as implemented by the in-memory adapter.
*/
package ports
