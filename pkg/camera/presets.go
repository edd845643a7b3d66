package camera

// Preset names for common configurations
const (
	Preset5MP   = "5mp"
	Preset1080p = "1080p"
	Preset720p  = "720p"
	PresetVGA   = "vga"
	PresetQVGA  = "qvga"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		Preset5MP:   DefaultConfig(),
		Preset1080p: HD1080Config(),
		Preset720p:  HD720Config(),
		PresetVGA:   VGAConfig(),
		PresetQVGA:  QVGAConfig(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{Preset5MP, Preset1080p, Preset720p, PresetVGA, PresetQVGA}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	presets := Presets()
	if cfg, ok := presets[name]; ok {
		return &cfg
	}
	return nil
}

// FallbackOrder lists presets from highest to lowest resolution. Open
// walks this list when the camera rejects the requested resolution.
func FallbackOrder() []string {
	return []string{Preset5MP, Preset1080p, Preset720p, PresetVGA}
}

// HD1080Config returns 1080p Full HD configuration.
func HD1080Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1920
	cfg.Height = 1080
	cfg.Framerate = 30
	return cfg
}

// HD720Config returns 720p HD configuration.
// Good balance of quality and performance.
func HD720Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280
	cfg.Height = 720
	cfg.Framerate = 30
	return cfg
}

// VGAConfig returns the 640x480 configuration used for color tracking,
// where the control loop rate matters more than detail.
func VGAConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	cfg.Framerate = 30
	return cfg
}

// QVGAConfig returns the 320x240 configuration used by the PID tracker.
func QVGAConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 320
	cfg.Height = 240
	cfg.Framerate = 30
	return cfg
}
