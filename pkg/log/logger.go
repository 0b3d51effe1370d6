// Package log 提供基于 zerolog 的分组件日志。
// 未调用 Init 时各 Logger 为零值，写入会被静默丢弃。
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerType 日志输出格式
type LoggerType uint8

const (
	ConsoleLogger LoggerType = iota
	JSONLogger
)

var (
	Root   zerolog.Logger
	Server zerolog.Logger
	Codec  zerolog.Logger
)

// Options 日志配置
type Options struct {
	// LogLevel 默认 Info
	LogLevel zerolog.Level
	Type     LoggerType
	// Out 输出目标，为 nil 时使用标准输出
	Out io.Writer
}

// ParseLogLevel 解析日志级别字符串，空字符串视为 info
func ParseLogLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

// Init 初始化全局 Logger
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var w io.Writer = out
	if opts.Type == ConsoleLogger {
		w = newConsoleWriter(out)
	}

	Root = zerolog.New(w).Level(opts.LogLevel).
		With().Timestamp().Logger()
	Server = Root.With().Str("component", "server").Logger()
	Codec = Root.With().Str("component", "codec").Logger()
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	cw.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("message: \"%s\" |", i)
	}

	cw.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\"%s\": ", i)
	}

	cw.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\"%s\" |", i)
	}

	cw.FormatErrFieldValue = func(i interface{}) string {
		return fmt.Sprintf(" %s |", i)
	}
	return cw
}
