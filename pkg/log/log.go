/*
 * Copyright 2022 CECTC, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process wide logger.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Filename   string `yaml:"filename" json:"filename"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
	Console    bool   `yaml:"console" json:"console"`
}

// Logger is a named child logger, one per connection.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(zapcore.AddSync(os.Stdout), level)
)

func newLogger(ws zapcore.WriteSyncer, lvl zap.AtomicLevel) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), ws, lvl)
	return &Logger{
		sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
		level: lvl,
	}
}

// Init replaces the process wide logger. A rotating file is used when
// Filename is set, stdout otherwise.
func Init(cfg *Config) {
	if cfg == nil {
		return
	}
	level.SetLevel(parseLevel(cfg.Level))

	var syncers []zapcore.WriteSyncer
	if cfg.Filename != "" {
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}))
	}
	if cfg.Filename == "" || cfg.Console {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	logger = newLogger(zapcore.NewMultiWriteSyncer(syncers...), level)
}

// SetLevel changes the level of every logger created by this package.
func SetLevel(lvl string) {
	level.SetLevel(parseLevel(lvl))
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// With returns a child of the process wide logger carrying the given key value pairs.
func With(args ...interface{}) *Logger {
	return logger.With(args...)
}

func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(args...), level: l.level}
}

// DebugEnabled reports whether debug output is written.
func (l *Logger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *Logger) Debug(args ...interface{}) {
	l.sugar.Debug(args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(args ...interface{}) {
	l.sugar.Info(args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.sugar.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.sugar.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func Debug(args ...interface{}) {
	logger.sugar.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	logger.sugar.Debugf(format, args...)
}

func Info(args ...interface{}) {
	logger.sugar.Info(args...)
}

func Infof(format string, args ...interface{}) {
	logger.sugar.Infof(format, args...)
}

func Warn(args ...interface{}) {
	logger.sugar.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	logger.sugar.Warnf(format, args...)
}

func Error(args ...interface{}) {
	logger.sugar.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	logger.sugar.Errorf(format, args...)
}

func Fatal(args ...interface{}) {
	logger.sugar.Fatal(args...)
}

func Fatalf(format string, args ...interface{}) {
	logger.sugar.Fatalf(format, args...)
}

func Panic(args ...interface{}) {
	logger.sugar.Panic(args...)
}

func Panicf(format string, args ...interface{}) {
	logger.sugar.Panicf(format, args...)
}

// Sync flushes the process wide logger.
func Sync() error {
	return logger.sugar.Sync()
}
