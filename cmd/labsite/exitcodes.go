package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config)
	ExitDataError   = 3 // Data error (invalid ORCID iD, invalid contact form)
	ExitNoResults   = 4 // No provider returned publications
	ExitUpstream    = 5 // Remote service rejected the request
)
