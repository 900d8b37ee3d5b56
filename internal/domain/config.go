package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Classify ClassifyConfig `mapstructure:"classify"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BridgeConfig contains configuration for the external extraction tool
type BridgeConfig struct {
	Script       string        `mapstructure:"script"`
	PythonBinary string        `mapstructure:"python_binary"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ClassifyConfig contains classifier tuning
type ClassifyConfig struct {
	CheckPriority       int           `mapstructure:"check_priority"`
	MediaMinInterval    time.Duration `mapstructure:"media_min_interval"`
	PlaylistMinInterval time.Duration `mapstructure:"playlist_min_interval"`
	MaxFilenameLength   int           `mapstructure:"max_filename_length"`
}

// HistoryConfig contains classification-history persistence configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // directory for category log files
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Bridge: BridgeConfig{
			Script:       "$HOME/.croxz/croxz_bridge.py",
			PythonBinary: "python3",
			Timeout:      120 * time.Second,
		},
		Classify: ClassifyConfig{
			CheckPriority:       50,
			MediaMinInterval:    300 * time.Millisecond,
			PlaylistMinInterval: 500 * time.Millisecond,
			MaxFilenameLength:   200,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.croxz/history.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
			LogsDir:    "$HOME/.croxz/logs",
		},
	}
}
