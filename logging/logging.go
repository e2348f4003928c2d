package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

/*
Config 描述日志的输出方式。

	FileLevel 写入文件的最低级别；
	ConsoleLevel 输出到控制台的最低级别；
	FileDir 日志文件目录，为空时不写文件；
	DisableConsole 关闭控制台输出；
*/
type Config struct {
	FileLevel      logrus.Level
	ConsoleLevel   logrus.Level
	FileDir        string
	DisableConsole bool
}

func GenerateTestConfig(t *testing.T) *Config {
	return &Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.DebugLevel,
		FileDir:        t.TempDir(),
		DisableConsole: false,
	}
}

var (
	configLock    sync.Mutex
	defaultConfig = Config{
		FileLevel:    logrus.InfoLevel,
		ConsoleLevel: logrus.InfoLevel,
	}

	defaultLogger     *logrus.Logger
	defaultLoggerOnce sync.Once

	fileLock sync.Mutex
	files    = make(map[string]*os.File)
)

func SetDefaultConfig(config *Config) {
	configLock.Lock()
	defer configLock.Unlock()

	defaultConfig = *config
}

// Default 返回进程共享的 logger，首次调用时按当前默认配置创建。
func Default() *logrus.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger()
	})
	return defaultLogger
}

func NewLogger() *logrus.Logger {
	configLock.Lock()
	config := defaultConfig
	configLock.Unlock()

	return newLogger(&config)
}

func newLogger(config *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level := logrus.PanicLevel

	if !config.DisableConsole {
		logger.AddHook(&writerHook{
			writer:    os.Stdout,
			levels:    levelsUpTo(config.ConsoleLevel),
			formatter: logger.Formatter,
		})
		level = maxLevel(level, config.ConsoleLevel)
	}

	if len(config.FileDir) != 0 {
		file, err := openLogFile(config.FileDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file in [%s] fail: %v\n", config.FileDir, err)
		} else {
			logger.AddHook(&writerHook{
				writer:    file,
				levels:    levelsUpTo(config.FileLevel),
				formatter: &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
			})
			level = maxLevel(level, config.FileLevel)
		}
	}

	logger.SetLevel(level)
	return logger
}

func openLogFile(dir string) (*os.File, error) {
	path := filepath.Join(dir, fmt.Sprintf("annotator-%s.log", time.Now().Format("2006-01-02")))

	fileLock.Lock()
	defer fileLock.Unlock()

	if file, ok := files[path]; ok {
		return file, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	files[path] = file
	return file, nil
}

func maxLevel(a, b logrus.Level) logrus.Level {
	if a > b {
		return a
	}
	return b
}

func levelsUpTo(level logrus.Level) []logrus.Level {
	ret := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= level {
			ret = append(ret, l)
		}
	}
	return ret
}

type writerHook struct {
	writer    io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = h.writer.Write(line)
	return err
}
