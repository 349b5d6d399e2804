// Package constants provides shared constants used throughout the quotebook codebase.
// This includes timeouts, intervals, storage keys, file permissions and the
// user-facing status strings that adapters display.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to a remote gateway
	DefaultHTTPTimeout = 30 * time.Second

	// FetchTimeout bounds a single remote fetch during a sync
	FetchTimeout = 10 * time.Second

	// PushTimeout bounds a single outbound quote push
	PushTimeout = 10 * time.Second

	// SyncContextTimeout is the timeout for each scheduled sync run
	SyncContextTimeout = 1 * time.Minute

	// ShutdownTimeout is how long shutdown waits for in-flight pushes
	ShutdownTimeout = 5 * time.Second
)

// Interval constants
const (
	// DefaultSyncInterval is the default interval between automatic syncs
	DefaultSyncInterval = 30 * time.Second

	// StatusDisplayDuration is how long a sync status message stays visible
	StatusDisplayDuration = 3 * time.Second

	// ResponseCacheTTL is how long the server caches the quote list response
	ResponseCacheTTL = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Storage keys. These match the layout of the durable and session slots.
const (
	// KeyQuotes holds the JSON array of quotes
	KeyQuotes = "quotes"

	// KeySelectedCategory holds the active category filter
	KeySelectedCategory = "selectedCategory"

	// KeyLastViewedIndex holds the session-scoped last viewed index
	KeyLastViewedIndex = "lastViewedQuoteIndex"
)

// Default values
const (
	// FilterAll is the filter value that matches every quote
	FilterAll = "all"

	// DefaultRemoteURL is the default remote endpoint for the HTTP gateway
	DefaultRemoteURL = "https://jsonplaceholder.typicode.com/posts"

	// DefaultRemoteCategory is assigned to remote items that carry no category
	DefaultRemoteCategory = "Server"

	// DefaultServeAddr is the listen address of the quotebook server
	DefaultServeAddr = ":8080"

	// ExportFileName is the default file name for exports
	ExportFileName = "quotes.json"

	// DefaultDataPath is the default directory for durable storage
	DefaultDataPath = "~/.quotebook"
)

// Status messages shown to users after a sync or on errors
const (
	// MsgSynced is shown when a sync finished without conflicts
	MsgSynced = "Quotes synced successfully."

	// MsgConflictsFormat is shown when a sync resolved conflicts
	MsgConflictsFormat = "Sync complete: %d conflict(s) resolved, server version kept."

	// MsgSyncError is shown when the remote fetch failed
	MsgSyncError = "Error syncing quotes with server."

	// MsgNoQuotes is shown when the filtered view is empty
	MsgNoQuotes = "No quotes available."

	// MsgMissingFields is shown when an added quote lacks text or category
	MsgMissingFields = "Please enter both quote and category!"

	// MsgQuoteAdded is shown after a quote was added
	MsgQuoteAdded = "Quote added."
)
