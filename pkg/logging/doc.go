// Package logging configures the process-wide slog logger.
//
// Every binary calls SetDefaultStructuredLogger (or the WithLevel variant
// when a --log-level flag is set) once at startup, then logs through the
// slog package functions. Records are JSON on stderr and always carry the
// module and version attributes:
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"index built",
//	 "module":"recipedexd","version":"v0.4.0","recipes":9,"skipped":0}
//
// Level names are case-insensitive: debug, info, warn (or warning) and
// error. Anything else, including an empty LOG_LEVEL, means info. At debug
// level each record also includes its source location.
//
// NewLogLogger adapts the default handler for APIs that still take a
// *log.Logger, such as http.Server.ErrorLog.
package logging
