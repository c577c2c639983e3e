package domain

import "os"

// ModelID returns the configured model, falling back to the shipped default.
func (c *Config) ModelID() string {
	if c.Generation.ModelID != "" {
		return c.Generation.ModelID
	}
	return DefaultModelID
}

// APIKeyEnvVar returns the environment variable holding the API key.
func (c *Config) APIKeyEnvVar() string {
	if c.Generation.APIKeyEnvVar != "" {
		return c.Generation.APIKeyEnvVar
	}
	return DefaultAPIKeyEnvVar
}

// ResolveAPIKey looks up the API key from the configured environment variable.
// An empty result means the remote service cannot be reached.
func (c *Config) ResolveAPIKey() string {
	return os.Getenv(c.APIKeyEnvVar())
}

// RequestBudget returns the advisory per-minute request budget.
func (c *Config) RequestBudget() int {
	if c.Generation.RequestsPerMinute > 0 {
		return c.Generation.RequestsPerMinute
	}
	return DefaultRequestsPerMinute
}

// Interpreter returns the Python interpreter used for installs and execution.
func (c *Config) Interpreter() string {
	if c.Python.Interpreter != "" {
		return c.Python.Interpreter
	}
	return "python3"
}

// Shortcut returns a keyboard binding by action name, empty when unbound.
// Bindings are persisted for the desktop front end; the CLI only round-trips them.
func (c *Config) Shortcut(action string) string {
	if c.Shortcuts == nil {
		return ""
	}
	return c.Shortcuts[action]
}

// SetShortcut records a keyboard binding for an action.
func (c *Config) SetShortcut(action, binding string) {
	if c.Shortcuts == nil {
		c.Shortcuts = map[string]string{}
	}
	c.Shortcuts[action] = binding
}

// ScriptDir returns the configured store root, which may be empty when the
// loader has not hydrated defaults yet.
func (c *Config) ScriptDir() string {
	return os.ExpandEnv(c.Scripts.Dir)
}
