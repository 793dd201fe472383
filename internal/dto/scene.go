package dto

import "time"

// SceneFile is the on-disk form of a scene fixture (YAML or JSON).
type SceneFile struct {
	Name  string     `yaml:"name" json:"name"`
	Nodes []NodeSpec `yaml:"nodes" json:"nodes"`
}

// NodeSpec describes one scene node and its subtree.
type NodeSpec struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Active *bool  `yaml:"active" json:"active"`

	// State turns the node into a state when present.
	State *StateSpec `yaml:"state" json:"state"`

	// Components are kind-tagged parameter maps, e.g. {kind: log, message: hi}.
	Components []map[string]any `yaml:"components" json:"components"`

	Children []NodeSpec `yaml:"children" json:"children"`
}

// StateSpec holds the state settings of a node.
type StateSpec struct {
	Mode  string `yaml:"mode" json:"mode"`
	Color string `yaml:"color" json:"color"`
	// Default marks the state as a default of its parent.
	Default bool `yaml:"default" json:"default"`
}

// IsActive reports the node's own active flag; nodes are active unless stated.
func (n NodeSpec) IsActive() bool {
	return n.Active == nil || *n.Active
}

// EffectParams are the dispatch settings shared by every effect kind.
type EffectParams struct {
	When     string `mapstructure:"when"`
	OnAwake  bool   `mapstructure:"on_awake"`
	Disabled bool   `mapstructure:"disabled"`
}

// TransitionParams are the settings shared by every transition kind.
type TransitionParams struct {
	Type     string `mapstructure:"type"`
	To       string `mapstructure:"to"`
	Disabled bool   `mapstructure:"disabled"`
}

type ActivateParams struct {
	EffectParams `mapstructure:",squash"`
	Mode         string   `mapstructure:"mode"`
	Subjects     []string `mapstructure:"subjects"`
}

type LogParams struct {
	EffectParams `mapstructure:",squash"`
	Message      string `mapstructure:"message"`
	Level        string `mapstructure:"level"`
}

type CallParams struct {
	EffectParams `mapstructure:",squash"`
	Function     string         `mapstructure:"function"`
	Args         map[string]any `mapstructure:"args"`
}

type EmitParams struct {
	EffectParams `mapstructure:",squash"`
	Signal       string `mapstructure:"signal"`
}

type DelayedParams struct {
	TransitionParams `mapstructure:",squash"`
	// Delay accepts a duration string ("1.5s") or a number of seconds.
	Delay time.Duration `mapstructure:"delay"`
}

type KeyPressParams struct {
	TransitionParams `mapstructure:",squash"`
	Key              string `mapstructure:"key"`
}

type ColliderParams struct {
	TransitionParams `mapstructure:",squash"`
	Phase            string   `mapstructure:"phase"`
	Filter           string   `mapstructure:"filter"`
	Others           []string `mapstructure:"others"`
}

type SignalParams struct {
	TransitionParams `mapstructure:",squash"`
	Signal           string `mapstructure:"signal"`
}
