package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default atlas settings applied to new projects
	DefaultWidth         int  `json:"default_width"`
	DefaultHeight        int  `json:"default_height"`
	DefaultPadding       int  `json:"default_padding"`
	DefaultAllowRotation bool `json:"default_allow_rotation"`
	DefaultPowerOfTwo    bool `json:"default_power_of_two"`
	DefaultAutoGrow      bool `json:"default_auto_grow"`
	DefaultMaxSize       int  `json:"default_max_size"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultWidth:         defaults.Width,
		DefaultHeight:        defaults.Height,
		DefaultPadding:       defaults.Padding,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultPowerOfTwo:    defaults.PowerOfTwo,
		DefaultAutoGrow:      defaults.AutoGrow,
		DefaultMaxSize:       defaults.MaxSize,
		RecentProjects:       []string{},
		LogLevel:             "info",
	}
}

// ApplyToSettings copies the default values from AppConfig into an AtlasSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *AtlasSettings) {
	s.Width = c.DefaultWidth
	s.Height = c.DefaultHeight
	s.Padding = c.DefaultPadding
	s.AllowRotation = c.DefaultAllowRotation
	s.PowerOfTwo = c.DefaultPowerOfTwo
	s.AutoGrow = c.DefaultAutoGrow
	s.MaxSize = c.DefaultMaxSize
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
