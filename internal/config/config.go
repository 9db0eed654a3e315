// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	MaxFPS      float32 `yaml:"max_fps"`      // <= 0 disables the frame cap
	MSAASamples int32   `yaml:"msaa_samples"` // 0 disables multisampling
}

// DebugConfig holds development-time settings.
type DebugConfig struct {
	GLStateChecks bool `yaml:"gl_state_checks"` // warn on program/framebuffer bind misuse
	ShowFPS       bool `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			MaxFPS:      0,
			MSAASamples: 4,
		},
		Debug: DebugConfig{
			GLStateChecks: false,
			ShowFPS:       false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
