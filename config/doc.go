// Package config loads the journey-planner application configuration from
// config.yml, applies environment overrides and defaults, and validates the
// result.
package config
