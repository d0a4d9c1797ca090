// Package logging wires log/slog for the libdeps command: a console handler
// whose format depends on whether stderr is a terminal, and an optional JSON
// log file per invocation tagged with a run ID.
package logging
