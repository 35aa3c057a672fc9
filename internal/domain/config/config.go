package config

// TransportKind selects which wire protocol the daemon's remote-control
// surface speaks.
type TransportKind string

// Transport kind constants.
const (
	// TransportSocket serves line-framed TCP requests.
	TransportSocket TransportKind = "socket"
	// TransportHTTP serves GET /command?cmd=....
	TransportHTTP TransportKind = "http"
)

// Default transport ports.
const (
	DefaultSocketPort = 1337
	DefaultHTTPPort   = 4242
)

// ServerConfig describes the transport the daemon should start.
type ServerConfig struct {
	Type TransportKind
	Host string
	Port int
}

// SMTPConfig is an optional notification collaborator's connection
// parameters; the core neither dials it nor reads it.
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// Config is the program-table snapshot a configuration provider returns.
type Config struct {
	// Programs maps program name to its declaration.
	Programs map[string]*Program
	// Server selects the transport.
	Server ServerConfig
	// SMTP is optional. The core does not read it: notifications go to the
	// supervisor's sink whether or not it is set.
	SMTP *SMTPConfig
	// SourcePath records where this snapshot was loaded from, so Reload
	// can re-read the same location.
	SourcePath string
}
