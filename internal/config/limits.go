package config

const (
	// MaxMessageLength is the maximum length in bytes for a message body.
	// Large enough for pasted documents, small enough that a single node
	// cannot dominate the provider context window.
	MaxMessageLength = 100_000
)
