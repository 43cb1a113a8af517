package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config opciones del logger.
type Config struct {
	Env   string // development -> consola legible; cualquier otro -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger envuelve zerolog para la app: un logger raíz configurado por entorno
// y subloggers etiquetados por componente (postgres, http) para la infraestructura.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger raíz. En development escribe consola legible con hora local;
// en el resto de entornos, JSON por línea para el agregador.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &Logger{
		zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
	}
}

// Component devuelve un sublogger con el campo "component" fijo, para
// distinguir en los logs qué pieza de infraestructura habla.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Debug, Info, Warn, Error, Fatal delegados a zerolog.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos arbitrarios.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
