package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stdout, "tamenchan")

func newLogger(w io.Writer, appName string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	return l
}

// InitLog 初始化全局日志，未调用时使用 info 级别的默认日志
func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout 而不是 os.Stderr，避免 IDE 控制台把所有日志染成红色
	logger = newLogger(os.Stdout, appName)
	// 启用调用者信息（显示文件名和行号）
	logger.SetReportCaller(true)
	logger.SetCallerOffset(1)
	SetLevel(logLevel)
}

// SetOutput 替换输出目标，CLI 子命令和测试使用
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 调整日志级别，配置热更新时调用
func SetLevel(logLevel string) {
	logger.SetLevel(ParseLevel(logLevel))
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatalf(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Infof(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warnf(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Errorf(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debugf(format)
	} else {
		logger.Debugf(format, args...)
	}
}
