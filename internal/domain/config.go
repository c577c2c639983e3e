package domain

// Config mirrors ~/.taskauto/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Generation          GenerationConfig  `yaml:"generation"`
	Scripts             ScriptSettings    `yaml:"scripts"`
	Python              PythonSettings    `yaml:"python"`
	Shortcuts           map[string]string `yaml:"shortcuts,omitempty"`
}

// GenerationConfig configures the remote generation service.
type GenerationConfig struct {
	ModelID           string `yaml:"model_id"`
	APIKeyEnvVar      string `yaml:"api_key_env_var"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// ScriptSettings configures the on-disk script store.
type ScriptSettings struct {
	Dir string `yaml:"dir"`
}

// PythonSettings configure the host runtime used for dependency checks,
// installs and script execution.
type PythonSettings struct {
	Interpreter string `yaml:"interpreter"`
}
