package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// EditPath points at a .hcl edit file or a directory of them. It may
	// be empty: a tree built purely from schema defaults is still usable
	// with -set edits or for inspecting the default configuration.
	EditPath string

	// Sets holds command-line edits of the form "path=value", applied
	// after the edit files.
	Sets []string

	LogFormat string
	LogLevel  string

	// DumpFormat selects how the flattened tree is printed: "text",
	// "yaml", or "" for no dump.
	DumpFormat string

	// Assemble builds the runtime plan after edits are applied.
	Assemble bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	// All fields have usable zero values; validation of the log options
	// happens at the CLI boundary where the error can name the flag.
	return &cfg, nil
}
