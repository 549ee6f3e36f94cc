// Package logger is the console logging layer for the CLIs built on this
// module. Log lines go through a zap console core with short colored level
// badges; Progress renders a transient status line that live-updates on a
// terminal and degrades to plain writes everywhere else.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uilive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// out is the shared sink; color.Output handles terminals that need escape
// translation.
var out io.Writer = color.Output

var stdoutIsTerminal = func() bool {
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}()

func levelBadge(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString(color.MagentaString("dbg"))
	case zapcore.WarnLevel:
		enc.AppendString(color.YellowString("wrn"))
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		enc.AppendString(color.RedString("err"))
	default:
		enc.AppendString(color.CyanString("inf"))
	}
}

func consoleEncoder(debug bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		TimeKey:          "ts",
		ConsoleSeparator: "  ",
		EncodeLevel:      levelBadge,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
	}
	if !debug {
		// quiet mode keeps only the badge and the message
		cfg.TimeKey = ""
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Setup rebuilds the global logger. Debug mode lowers the level threshold
// and adds timestamps.
func Setup(debug bool) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(consoleEncoder(debug), zapcore.AddSync(out), level)
	zap.ReplaceGlobals(zap.New(core))
}

func init() {
	Setup(false)
}

// Task returns a logger scoped to one unit of work; every line it emits
// carries the task name as a structured field.
func Task(name string) *zap.SugaredLogger {
	return zap.S().With("task", name)
}

// Progress is a single status line. On a terminal each Update rewrites the
// line in place through uilive; elsewhere updates append as ordinary lines.
type Progress struct {
	live *uilive.Writer
}

// NewProgress creates a status line bound to the logger's sink.
func NewProgress() *Progress {
	if !stdoutIsTerminal {
		return &Progress{}
	}
	w := uilive.New()
	w.Out = out
	return &Progress{live: w}
}

// Update replaces the status line.
func (p *Progress) Update(format string, args ...any) {
	if p.live == nil {
		fmt.Fprintf(out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.live, format+"\n", args...)
	p.live.Flush()
}

// Done writes a final line that stays on screen above later output.
func (p *Progress) Done(format string, args ...any) {
	if p.live == nil {
		fmt.Fprintf(out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.live.Bypass(), format+"\n", args...)
	p.live.Flush()
}

func Debugf(format string, args ...any) {
	zap.S().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	zap.S().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	zap.S().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	zap.S().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	zap.S().Fatalf(format, args...)
}
