package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"wse/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// minLevel maps configured level names to the lowest enabled zap level.
var minLevel = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"normal": zapcore.InfoLevel,
}

// Prepare builds program logger: informational messages go to stdout,
// errors to stderr, and everything at configured level into log file. When
// debug report is requested file log is always written at debug level and
// added to the report together with crash output.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	cores := consoleCores(conf.ConsoleLogger.Level)

	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}

	var moved string
	if lvl, ok := minLevel[level]; ok {
		dir := filepath.Dir(conf.FileLogger.Destination)
		if crash := openLog(filepath.Join(dir, misc.GetAppName()+"-panic.log"), mode, "-panic.*.log"); crash != nil {
			debug.SetCrashOutput(crash, debug.CrashOptions{})
			rpt.Store("panic.log", crash.Name())
			crash.Close()
		}

		f := openLog(conf.FileLogger.Destination, mode, ".*.log")
		if f == nil {
			return nil, fmt.Errorf("unable to open log file %q", conf.FileLogger.Destination)
		}
		if f.Name() != conf.FileLogger.Destination {
			moved = f.Name()
		}
		rpt.Store("wse.log", f.Name())
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), lvl))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if len(moved) > 0 {
		log.Warn("Log file could not be created at requested location", zap.String("location", moved))
	}
	return log.Named(misc.GetAppName()), nil
}

// consoleCores returns stdout core for messages below error level and
// stderr core for errors. Level "none" silences console entirely.
func consoleCores(level string) []zapcore.Core {
	lvl, ok := minLevel[level]
	if !ok {
		return nil
	}
	return []zapcore.Core{
		zapcore.NewCore(consoleEncoder(os.Stdout), zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool { return lvl <= l && l < zapcore.ErrorLevel })),
		zapcore.NewCore(plainErrors{consoleEncoder(os.Stderr)}, zapcore.Lock(os.Stderr),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel })),
	}
}

// consoleEncoder colors levels and drops time stamps when stream is a
// terminal.
func consoleEncoder(stream *os.File) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	return zapcore.NewConsoleEncoder(ec)
}

// openLog opens log file in requested mode. When it cannot be created a
// temporary file named by pattern is used instead, nil means neither worked.
func openLog(name, mode, pattern string) *os.File {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if mode == "append" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	if f, err := os.OpenFile(name, flags, 0644); err == nil {
		return f
	}
	if f, err := os.CreateTemp("", misc.GetAppName()+pattern); err == nil {
		return f
	}
	return nil
}

// plainErrors keeps console error output to a single line: wrapped errors
// lose their verbose form.
type plainErrors struct {
	zapcore.Encoder
}

func (p plainErrors) Clone() zapcore.Encoder {
	return plainErrors{p.Encoder.Clone()}
}

func (p plainErrors) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if e, ok := f.Interface.(error); ok && f.Type == zapcore.ErrorType {
			f.Interface = errors.New(e.Error())
		}
		out = append(out, f)
	}
	return p.Encoder.EncodeEntry(ent, out)
}
