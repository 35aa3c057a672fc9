package viperprovider

import "github.com/Mounadi05/taskmaster/internal/domain/config"

// stdStreamDTO is the wire shape of a program's stdout/stderr
// declaration: a block with a path and optional rotation settings.
// Viper/yaml unmarshal the block form into this struct; a bare string
// path is not decoded, and Load fails on it.
type stdStreamDTO struct {
	Path     string `mapstructure:"path" yaml:"path"`
	MaxBytes int64  `mapstructure:"maxbytes" yaml:"maxbytes"`
	Backups  int    `mapstructure:"backups" yaml:"backups"`
}

func (d stdStreamDTO) toDomain() config.StdStream {
	return config.StdStream{Path: d.Path, MaxBytes: d.MaxBytes, Backups: d.Backups}
}

type notifyBlockDTO struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

func (d *notifyBlockDTO) toDomain() *config.NotifyBlock {
	if d == nil {
		return nil
	}
	return &config.NotifyBlock{Enabled: d.Enabled}
}

// programDTO is the wire shape of one program declaration.
type programDTO struct {
	Cmd          []string         `mapstructure:"cmd" yaml:"cmd"`
	NumProcs     *int             `mapstructure:"numprocs" yaml:"numprocs"`
	Umask        string           `mapstructure:"umask" yaml:"umask"`
	WorkingDir   string           `mapstructure:"workingdir" yaml:"workingdir"`
	AutoStart    *bool            `mapstructure:"autostart" yaml:"autostart"`
	AutoRestart  string           `mapstructure:"autorestart" yaml:"autorestart"`
	ExitCodes    []int            `mapstructure:"exitcodes" yaml:"exitcodes"`
	StartRetries *int             `mapstructure:"startretries" yaml:"startretries"`
	StartSecs    *int             `mapstructure:"startsecs" yaml:"startsecs"`
	StopSignal   string           `mapstructure:"stopsignal" yaml:"stopsignal"`
	StopWaitSecs *int             `mapstructure:"stoptsecs" yaml:"stoptsecs"`
	Stdout       stdStreamDTO     `mapstructure:"stdout" yaml:"stdout"`
	Stderr       stdStreamDTO     `mapstructure:"stderr" yaml:"stderr"`
	Env          map[string]string `mapstructure:"env" yaml:"env"`
	User         string           `mapstructure:"user" yaml:"user"`
	Group        string           `mapstructure:"group" yaml:"group"`
	Priority     int              `mapstructure:"priority" yaml:"priority"`
	OnSuccess    *notifyBlockDTO  `mapstructure:"on_success" yaml:"on_success"`
	OnFailure    *notifyBlockDTO  `mapstructure:"on_failure" yaml:"on_failure"`
}

// defaults applied when a program omits these fields: 1 copy, autostart
// off, never auto-restart, three retries, 1s minimum uptime, SIGTERM, 10s
// grace.
const (
	defaultNumProcs     = 1
	defaultAutoStart    = false
	defaultStartRetries = 3
	defaultStartSecs    = 1
	defaultStopSignal   = "TERM"
	defaultStopWaitSecs = 10
)

func (d *programDTO) applyDefaults() {
	if d.NumProcs == nil {
		n := defaultNumProcs
		d.NumProcs = &n
	}
	if d.AutoStart == nil {
		b := defaultAutoStart
		d.AutoStart = &b
	}
	if d.AutoRestart == "" {
		d.AutoRestart = string(config.AutoRestartNever)
	}
	if d.StartRetries == nil {
		n := defaultStartRetries
		d.StartRetries = &n
	}
	if d.StartSecs == nil {
		n := defaultStartSecs
		d.StartSecs = &n
	}
	if d.StopSignal == "" {
		d.StopSignal = defaultStopSignal
	}
	if d.StopWaitSecs == nil {
		n := defaultStopWaitSecs
		d.StopWaitSecs = &n
	}
}

func (d programDTO) toDomain(name string) *config.Program {
	exitCodes := config.DefaultExitCodes()
	if len(d.ExitCodes) > 0 {
		exitCodes = make(map[int]struct{}, len(d.ExitCodes))
		for _, c := range d.ExitCodes {
			exitCodes[c] = struct{}{}
		}
	}

	return &config.Program{
		Name:              name,
		Cmd:               d.Cmd,
		NumProcs:          *d.NumProcs,
		Umask:             d.Umask,
		WorkingDir:        d.WorkingDir,
		AutoStart:         *d.AutoStart,
		AutoRestartPolicy: config.AutoRestart(d.AutoRestart),
		ExitCodes:         exitCodes,
		StartRetries:      *d.StartRetries,
		StartSecs:         *d.StartSecs,
		StopSignal:        d.StopSignal,
		StopWaitSecs:      *d.StopWaitSecs,
		Stdout:            d.Stdout.toDomain(),
		Stderr:            d.Stderr.toDomain(),
		Env:               d.Env,
		User:              d.User,
		Group:             d.Group,
		Priority:          d.Priority,
		OnSuccess:         d.OnSuccess.toDomain(),
		OnFailure:         d.OnFailure.toDomain(),
	}
}

type serverDTO struct {
	Type string `mapstructure:"type" yaml:"type"`
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type smtpDTO struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	From string `mapstructure:"from" yaml:"from"`
}

// rootDTO is the top-level configuration file shape.
type rootDTO struct {
	Server   serverDTO             `mapstructure:"server" yaml:"server"`
	SMTP     *smtpDTO              `mapstructure:"smtp" yaml:"smtp"`
	Programs map[string]programDTO `mapstructure:"programs" yaml:"programs"`
}

func (r *rootDTO) toDomain(sourcePath string) *config.Config {
	programs := make(map[string]*config.Program, len(r.Programs))
	for name, p := range r.Programs {
		p.applyDefaults()
		programs[name] = p.toDomain(name)
	}

	serverType := config.TransportKind(r.Server.Type)
	if serverType == "" {
		serverType = config.TransportSocket
	}
	port := r.Server.Port
	if port == 0 {
		if serverType == config.TransportHTTP {
			port = config.DefaultHTTPPort
		} else {
			port = config.DefaultSocketPort
		}
	}

	var smtp *config.SMTPConfig
	if r.SMTP != nil {
		smtp = &config.SMTPConfig{Host: r.SMTP.Host, Port: r.SMTP.Port, From: r.SMTP.From}
	}

	return &config.Config{
		Programs: programs,
		Server: config.ServerConfig{
			Type: serverType,
			Host: r.Server.Host,
			Port: port,
		},
		SMTP:       smtp,
		SourcePath: sourcePath,
	}
}
