// internal/config/model.go
//
// Typed configuration model and default values.
//
// Context
// -------
// The configuration tree has a fixed two-level shape:
//
//	server.port       integer   (required)
//	logs.file         string
//	logs.level        IMPORTANT | CRITICAL | DEVELOPMENT | NONE
//	logs.saveToFile   boolean
//
// The untyped tree (map[string]any) is what the resolver merges and the
// validator walks.  The structs below are the typed view decoded from the
// merged tree, used by the logger and the server wrapper.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`; keys are case-sensitive (`saveToFile`).
//   • `validate` tags are checked by the validator's value pass only.

package config

//
// Log level
//

// LogLevel selects which severities the logger emits.
type LogLevel string

const (
	LevelImportant   LogLevel = "IMPORTANT"
	LevelCritical    LogLevel = "CRITICAL"
	LevelDevelopment LogLevel = "DEVELOPMENT"
	LevelNone        LogLevel = "NONE"
)

//
// Sections
//

// Server holds the listener settings read by the dashboard wrapper.
type Server struct {
	Port int `koanf:"port" validate:"required,min=1,max=65535"`
}

// Logs holds logger settings.
type Logs struct {
	File       string   `koanf:"file"       validate:"required"`
	Level      LogLevel `koanf:"level"      validate:"oneof=IMPORTANT CRITICAL DEVELOPMENT NONE"`
	SaveToFile bool     `koanf:"saveToFile"`
}

//
// Root aggregate
//

// Config is the typed view of a resolved configuration tree.
type Config struct {
	Server Server `koanf:"server"`
	Logs   Logs   `koanf:"logs"`
}

//
// Defaults
//

const (
	DefaultPort    = 3000
	DefaultLogFile = "discord-dashboard.log"
	DefaultLevel   = LevelImportant
)

// DefaultValues returns a fresh copy of the default configuration tree.
func DefaultValues() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"port": DefaultPort,
		},
		"logs": map[string]any{
			"file":       DefaultLogFile,
			"level":      string(DefaultLevel),
			"saveToFile": false,
		},
	}
}

// DefaultLogs is the typed form of the default logs section.  The logger
// falls back to it when no configuration can be resolved.
func DefaultLogs() Logs {
	return Logs{File: DefaultLogFile, Level: DefaultLevel}
}

// RequiredPaths lists schema paths whose absence is fatal.
var RequiredPaths = []string{"server.port"}
