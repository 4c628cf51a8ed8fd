package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultContainer string  `json:"default_container"` // container preset name
	DefaultGap       float64 `json:"default_gap"`
	DefaultScale     float64 `json:"default_scale"`
	MaxWeightKg      float64 `json:"max_weight_kg"`
	MaxVolumeM3      float64 `json:"max_volume_m3"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings() and the default container.
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultContainer: DefaultContainer().Label,
		DefaultGap:       defaults.Gap,
		DefaultScale:     defaults.Scale,
		MaxWeightKg:      defaults.MaxWeightKg,
		MaxVolumeM3:      defaults.MaxVolumeM3,
		AutoSaveInterval: 0,
		RecentProjects:   []string{},
		Theme:            "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings
// struct so a new project inherits the user's saved defaults. A zero scale or
// limit leaves the corresponding setting untouched; a zero gap is valid.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultGap >= 0 {
		s.Gap = c.DefaultGap
	}
	if c.DefaultScale > 0 {
		s.Scale = c.DefaultScale
	}
	if c.MaxWeightKg > 0 {
		s.MaxWeightKg = c.MaxWeightKg
	}
	if c.MaxVolumeM3 > 0 {
		s.MaxVolumeM3 = c.MaxVolumeM3
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most limit entries.
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
