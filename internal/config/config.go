// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Paths    PathsConfig    `yaml:"paths" toml:"paths"`
	Editor   EditorConfig   `yaml:"editor" toml:"editor"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool    `yaml:"vsync" toml:"vsync"`
	FOV        float32 `yaml:"fov" toml:"fov"` // initial camera zoom, degrees
}

// PathsConfig holds the directories the editor reads from and writes to.
// Values may start with "~".
type PathsConfig struct {
	Resources   string `yaml:"resources" toml:"resources"`
	Saves       string `yaml:"saves" toml:"saves"`
	Shaders     string `yaml:"shaders" toml:"shaders"`
	Screenshots string `yaml:"screenshots" toml:"screenshots"`
}

// EditorConfig holds interaction settings.
type EditorConfig struct {
	DefaultScene     string  `yaml:"default_scene" toml:"default_scene"`
	HotReload        bool    `yaml:"hot_reload" toml:"hot_reload"`
	CameraSpeed      float32 `yaml:"camera_speed" toml:"camera_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
	ShowStats        bool    `yaml:"show_stats" toml:"show_stats"`
	LightMarkers     bool    `yaml:"light_markers" toml:"light_markers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    45,
		},
		Paths: PathsConfig{
			Resources:   "resources",
			Saves:       "saves",
			Shaders:     "shaders",
			Screenshots: "screenshots",
		},
		Editor: EditorConfig{
			DefaultScene:     "test.json",
			HotReload:        true,
			CameraSpeed:      2.5,
			MouseSensitivity: 0.1,
			LightMarkers:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
