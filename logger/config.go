package logger

// Config holds configuration for creating a logger instance.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format is the output format (text, json).
	Format string

	// Output is where logs are written: "stderr", "stdout", or a file
	// path. Never point this at stdout when serving the MCP protocol
	// over stdio.
	Output string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
		Output: "stderr",
	}
}
