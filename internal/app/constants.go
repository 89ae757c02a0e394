package app

// DefaultMaxSavedMatches caps saved matches per user when the caller passes no limit.
// Keep this in line with the config default so local runs behave like the server.
const DefaultMaxSavedMatches = 50
