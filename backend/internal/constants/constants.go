package constants

// Graph constants
const (
	// DefaultDatabase is the logical Neo4j database vocabulary is read from
	DefaultDatabase = "neo4j"
)

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000

	// DefaultCommandPrefix triggers the vocabulary lookup command in chat
	DefaultCommandPrefix = "!vocab"
)

// HTTP constants
const (
	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)
