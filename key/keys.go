// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Engine - these keys configure the external mpv process backing every pipeline.
const (
	PlayerExecutable        = "player.executable"
	PlayerExtraArgs         = "player.extra_args"
	PlayerSocketWaitRetries = "player.socket_wait_retries"
)

// Playback Controls - these keys tune how user input is translated into backend calls.
const (
	PlayerSeekStep        = "player.seek_step"
	PlayerPollInterval    = "player.poll_interval"
	PlayerWindowID        = "player.window_id"
	PlayerStartFullscreen = "player.start_fullscreen"
)

// Terminal User Interface (TUI)
const (
	TUIShowTime = "tui.show_time"
)

// Media Probing - these keys configure headless duration probes and their on-disk cache.
const (
	ProbeTimeout       = "probe.timeout"
	ProbeCache         = "probe.cache"
	ProbeCacheLifetime = "probe.cache_lifetime"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite  = "logs.write"
	LogsLevel  = "logs.level"
	LogsJson   = "logs.json"
	LogsMaxAge = "logs.max_age"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)
