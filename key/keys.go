// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Search Interaction - these keys define the parameters for mixtape discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchCategory             = "search.category"
	SearchLimit                = "search.limit"
)

// History Tracking - these keys configure the persistence of listening state.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// Media Playback - these keys maintain the state and configuration for playback transports.
const (
	PlayerBackend              = "player.backend"
	PlayerVolume               = "player.volume"
	PlayerSeekStep             = "player.seek_step"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// Network - these keys govern HTTP session behavior against the mixtape site.
const (
	NetworkCacheRequests = "network.cache_requests"
	NetworkSpoofTLS      = "network.spoof_tls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
