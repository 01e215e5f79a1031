package config

import "sync"

const (
	defaultFPSLimit      = 120
	defaultMaxPixelRatio = 2
)

// RuntimeSettings holds settings that may change while a chapter is running
// (e.g. when the config file is edited). Reads happen on the main thread,
// writes may come from the file watcher.
type RuntimeSettings struct {
	mu            sync.RWMutex
	fpsLimit      int // 0 means uncapped
	maxPixelRatio float32
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:      defaultFPSLimit,
	maxPixelRatio: defaultMaxPixelRatio,
}

// GetFPSLimit returns the current frame rate cap; 0 means uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Negative and absurdly low caps behave as uncapped / minimum
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && limit < 10 {
		limit = 10
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetMaxPixelRatio returns the upper bound applied to the device pixel ratio
func GetMaxPixelRatio() float32 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.maxPixelRatio
}

// SetMaxPixelRatio sets the upper bound applied to the device pixel ratio
func SetMaxPixelRatio(ratio float32) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if ratio < 1 {
		ratio = 1
	}

	globalRuntimeSettings.maxPixelRatio = ratio
}

// ClampPixelRatio returns min(deviceRatio, GetMaxPixelRatio())
func ClampPixelRatio(deviceRatio float32) float32 {
	limit := GetMaxPixelRatio()
	if deviceRatio <= 0 {
		return 1
	}
	if deviceRatio > limit {
		return limit
	}
	return deviceRatio
}

// Apply copies the runtime part of a loaded config into the global settings.
func Apply(c *Config) {
	SetFPSLimit(c.FPSLimit)
	SetMaxPixelRatio(c.MaxPixelRatio)
}
