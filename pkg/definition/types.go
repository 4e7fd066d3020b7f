package definition

// Document is the raw YAML shape of a machine definition file.
// Scalar variable and attribute values stay untyped here; Compile
// converts them into machine.Value.
type Document struct {
	Version     int                `yaml:"version"`
	Name        string             `yaml:"name"`
	Machine     MachineSection     `yaml:"machine"`
	Exploration ExplorationSection `yaml:"exploration"`
	Rules       []RuleSection      `yaml:"rules"`
	Filters     []FilterSection    `yaml:"filters"`
}

// MachineSection declares the machine's starting point.
type MachineSection struct {
	Initial InitialSection `yaml:"initial"`
}

// InitialSection holds the variables of the initial state.
type InitialSection struct {
	Variables map[string]any `yaml:"variables"`
}

// ExplorationSection configures the state-space search.
type ExplorationSection struct {
	Strategy  string `yaml:"strategy"`
	MaxStates int    `yaml:"max_states"`
	MaxDepth  int    `yaml:"max_depth"`
}

// RuleSection declares one transformation rule.
type RuleSection struct {
	Name      string            `yaml:"name"`
	Condition string            `yaml:"condition"`
	Transform map[string]string `yaml:"transform"`
}

// FilterSection declares one filter rule. Attributes are merged into
// every state whose variables satisfy the condition.
type FilterSection struct {
	Condition  string         `yaml:"condition"`
	Attributes map[string]any `yaml:"attributes"`
}
