package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02 15:04:05.000"

type CommonLogger struct {
	Info    zerolog.Logger
	Error   zerolog.Logger
	Trace   zerolog.Logger
	Warning zerolog.Logger
	Stream  zerolog.Logger
}

// AppLogger groups the leveled loggers of the HTTP usecases and of the event
// fan-out (broker and websocket hub).
type AppLogger struct {
	Http  CommonLogger
	Event CommonLogger
}

type Options struct {
	Dir     string
	Level   string
	Console bool
}

// NewLogger writes every logger to its own rotated file under opts.Dir, and
// to stdout when opts.Console is set. An unknown level falls back to info.
func NewLogger(opts Options) *AppLogger {
	_ = os.MkdirAll(opts.Dir, 0755)
	zerolog.TimeFieldFormat = timeFormat

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var console io.Writer
	if opts.Console {
		console = consoleWriter(os.Stdout, false)
	}

	return &AppLogger{
		Http:  newCommonLogger(console, opts.Dir, "", level),
		Event: newCommonLogger(console, opts.Dir, "event.", level),
	}
}

// NewNopLogger discards everything.
func NewNopLogger() *AppLogger {
	nop := zerolog.Nop()
	common := CommonLogger{Info: nop, Error: nop, Trace: nop, Warning: nop, Stream: nop}
	return &AppLogger{Http: common, Event: common}
}

func newCommonLogger(console io.Writer, dir, prefix string, level zerolog.Level) CommonLogger {
	open := func(name string) zerolog.Logger {
		var out io.Writer = fileWriter(filepath.Join(dir, prefix+name+".log"))
		if console != nil {
			out = io.MultiWriter(console, out)
		}
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}
	return CommonLogger{
		Stream:  open("stream"),
		Info:    open("info"),
		Trace:   open("trace"),
		Warning: open("warning"),
		Error:   open("error"),
	}
}

func fileWriter(filename string) io.Writer {
	writer := consoleWriter(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    5,
		MaxAge:     20,
		MaxBackups: 5,
		Compress:   true,
	}, true)
	writer.FormatFieldName = func(i interface{}) string { return fmt.Sprintf("%s=", i) }
	writer.FormatFieldValue = func(i interface{}) string { return fmt.Sprintf("%v", i) }
	return writer
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: timeFormat,
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%s]", i)
		},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("[%s]", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprint(i)
		},
	}
}
