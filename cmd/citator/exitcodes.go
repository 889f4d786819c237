package main

// Exit codes shared by every command
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unusable classifier)
	ExitDataError   = 3 // Data error (unreadable document, citation not found)
)
