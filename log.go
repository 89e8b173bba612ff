package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type kvLists struct {
	values   []zap.Field
	previous *kvLists
}

func (list *kvLists) appendTo(t []zap.Field) []zap.Field {
	if list.previous != nil {
		t = list.previous.appendTo(t)
	}
	t = append(t, list.values...)
	return t
}

var logger *zap.Logger

func init() {
	SetLevel(zapcore.WarnLevel)
}

// SetLevel replaces the global logger with a console logger writing to stderr
func SetLevel(l zapcore.Level) {
	setOutput(os.Stderr, l)
}

func setOutput(w io.Writer, l zapcore.Level) {
	writeSyncer := zapcore.AddSync(w)
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, writeSyncer, l)
	logger = zap.New(core)
}

// levelOf maps the -v counter to a log level
func levelOf(verbose int) zapcore.Level {
	switch {
	case verbose >= 2:
		return zapcore.DebugLevel
	case verbose >= 1:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

type kvKey struct{}

func CtxAddKvs(ctx context.Context, kvs ...interface{}) context.Context {
	if len(kvs) == 0 {
		return ctx
	}

	var fields = make([]zap.Field, 0, len(kvs)/2+1)

	for i := 0; i+1 < len(kvs); i += 2 {
		key := fmt.Sprint(kvs[i])
		val := fmt.Sprint(kvs[i+1])
		fields = append(fields, zap.String(key, val))
	}

	value := ctx.Value(kvKey{})
	previous, _ := value.(*kvLists)
	newList := &kvLists{
		values:   fields,
		previous: previous,
	}

	return context.WithValue(ctx, kvKey{}, newList)
}

func LoggerOf(ctx context.Context) *zap.Logger {
	return logger.With(getKvList(ctx)...)
}

func getKvList(ctx context.Context) []zap.Field {
	list, _ := ctx.Value(kvKey{}).(*kvLists)
	if list == nil {
		return nil
	}

	return list.appendTo(nil)
}
