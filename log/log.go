package log

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

type Logger interface {
	SetOutput(output io.Writer)
	WithStack(err interface{})
	Fatalf(format string, args ...interface{})
	Fatal(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
}

var mwlog Logger

func getLogger() Logger {
	if mwlog == nil {
		SetLogger(newDefaultLogger())
	}
	return mwlog
}

func SetLogger(logger Logger) {
	mwlog = logger
}

func SetOutput(output io.Writer) {
	getLogger().SetOutput(output)
}

func WithStack(err interface{}) {
	getLogger().WithStack(err)
}

func Fatalf(format string, args ...interface{}) {
	getLogger().Fatalf(format, args...)
}

func Fatal(args ...interface{}) {
	getLogger().Fatal(args...)
}

func Infof(format string, args ...interface{}) {
	getLogger().Infof(format, args...)
}

func Info(args ...interface{}) {
	getLogger().Info(args...)
}

type defaultLog struct {
	log *log.Logger
}

func newDefaultLogger() *defaultLog {
	return &defaultLog{log: log.New(os.Stderr, "mmowire: ", log.LstdFlags|log.Lshortfile)}
}

func (l *defaultLog) SetOutput(output io.Writer) {
	l.log.SetOutput(output)
}

func (l *defaultLog) WithStack(err interface{}) {
	er := errors.Errorf("%v", err)
	l.log.Fatalf("\n%+v", er)
}

func (l *defaultLog) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(format, args...)
}

func (l *defaultLog) Fatal(args ...interface{}) {
	l.log.Fatal(args...)
}

func (l *defaultLog) Infof(format string, args ...interface{}) {
	l.log.Printf(format, args...)
}

func (l *defaultLog) Info(args ...interface{}) {
	l.log.Print(args...)
}
