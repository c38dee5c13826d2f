package base

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	filename "github.com/keepeye/logrus-filename"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

const (
	TimestampFormat = "2006-01-02T15:04:05.000000Z08:00"
	LogDir          = "./log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitLog configures Logger from cfg. The returned closer releases the log
// file, if one was opened.
func InitLog(cfg LOG) (io.Closer, error) {
	switch cfg.Format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: TimestampFormat,
		})
	case "text":
		fallthrough
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: TimestampFormat,
			FullTimestamp:   true,
		})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nopCloser{}, errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	Logger.SetLevel(level)

	if !hasFilenameHook() {
		hook := filename.NewHook()
		hook.Field = "file"
		Logger.AddHook(hook)
	}

	if !cfg.LogToFile {
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(LogDir, os.ModePerm); err != nil {
		return nopCloser{}, errors.Wrap(err, "create log dir")
	}
	strTime := strings.ReplaceAll(time.Now().Format(TimestampFormat), ":", "_")
	logName := filepath.Join(LogDir, filepath.Base(os.Args[0])+"."+strTime+".log")

	logFile, err := os.OpenFile(logName, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
	if err != nil {
		return nopCloser{}, errors.Wrap(err, "open log file")
	}
	Logger.SetOutput(logFile)
	Logger.Debugf("Open %s success !!!", logName)
	return logFile, nil
}

func hasFilenameHook() bool {
	for _, hooks := range Logger.Hooks {
		for _, h := range hooks {
			if _, ok := h.(*filename.Hook); ok {
				return true
			}
		}
	}
	return false
}
