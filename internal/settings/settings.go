package settings

import (
	"time"

	"github.com/lucax88x/clockface/internal/redraw"
)

type ServerSettings struct {
	Addr         string
	CacheSize    int
	MaxDimension int
}

type Settings struct {
	LogLevel    string
	Density     float64
	RedrawDelay time.Duration
	FifoPath    string
	PidFilePath string
	ConfigDir   string
	ConfigName  string
	EnvPrefix   string
	Server      ServerSettings
}

//nolint:gochecknoglobals // ok
var Clockface = Settings{
	LogLevel:    "info",
	Density:     1,
	RedrawDelay: redraw.DefaultDelay,
	FifoPath:    "/tmp/clockface",
	PidFilePath: "/tmp/clockface.pid",
	ConfigDir:   "$HOME/.config/clockface",
	ConfigName:  "config",
	EnvPrefix:   "CLOCKFACE",
	Server: ServerSettings{
		Addr:         ":8080",
		CacheSize:    256,
		MaxDimension: 4096,
	},
}
