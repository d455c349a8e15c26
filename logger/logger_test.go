package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// LoggerTestSuite logger 测试套件.
type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) TestNewLogger_NilConfig() {
	log, err := NewLogger(nil)
	s.Error(err)
	s.Nil(log)
}

func (s *LoggerTestSuite) TestNewLogger_DefaultConfig() {
	log, err := NewLogger(DefaultConfig())
	s.NoError(err)
	s.NotNil(log)
}

func (s *LoggerTestSuite) TestNewLogger_DevConfig() {
	log, err := NewLogger(NewDevConfig())
	s.NoError(err)
	s.NotNil(log)
}

func (s *LoggerTestSuite) TestNewLogger_InvalidLevel() {
	log, err := NewLogger(&Config{Level: "invalid"})
	s.Error(err)
	s.Nil(log)

	var cfgErr *ConfigError
	s.Require().True(errors.As(err, &cfgErr))
	s.Equal("level", cfgErr.Field)
}

func (s *LoggerTestSuite) TestNewLogger_InvalidFormat() {
	log, err := NewLogger(&Config{Format: "xml"})
	s.Error(err)
	s.Nil(log)
}

func (s *LoggerTestSuite) TestNewLogger_InvalidOutput() {
	log, err := NewLogger(&Config{Output: "file"})
	s.Error(err)
	s.Nil(log)
}

func (s *LoggerTestSuite) TestNewLogger_UnsupportedType() {
	log, err := NewLogger(&Config{Type: "logrus"})
	s.Error(err)
	s.Nil(log)
	s.Contains(err.Error(), "unsupported logger type")
}

func (s *LoggerTestSuite) TestMustNewLogger() {
	s.NotPanics(func() {
		MustNewLogger(DefaultConfig())
	})
	s.Panics(func() {
		MustNewLogger(&Config{Level: "loud"})
	})
}

func (s *LoggerTestSuite) TestApplyDefaults() {
	cfg := &Config{}
	cfg.ApplyDefaults()

	s.Equal(TypeZap, cfg.Type)
	s.Equal(LevelInfo, cfg.Level)
	s.Equal(FormatJSON, cfg.Format)
	s.Equal(OutputStderr, cfg.Output)
	s.Equal("rbtree", cfg.ServiceName)
}

func (s *LoggerTestSuite) TestParseLevel() {
	s.Equal(zapcore.DebugLevel, parseLevel("DEBUG"))
	s.Equal(zapcore.WarnLevel, parseLevel("warning"))
	s.Equal(zapcore.ErrorLevel, parseLevel("error"))
	s.Equal(zapcore.InfoLevel, parseLevel(""))
}

func (s *LoggerTestSuite) TestWithFields() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.With(
		String("op", "remove"),
		Int("len", 3),
		Duration("elapsed", time.Second),
		Err(errors.New("boom")),
		Any("key", []int{1}),
	).Errorf("violation on %s", "remove")

	s.Require().Equal(1, logs.Len())
	entry := logs.All()[0]
	s.Equal("violation on remove", entry.Message)
	s.Equal(zapcore.ErrorLevel, entry.Level)

	ctx := entry.ContextMap()
	s.Equal("remove", ctx["op"])
	s.EqualValues(3, ctx["len"])
	s.Equal("boom", ctx["error"])
}

func (s *LoggerTestSuite) TestLevels() {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core))

	log.Debug("hidden")
	log.Debugf("hidden %d", 1)
	log.Info("info")
	log.Infof("info %d", 2)
	log.Warn("warn")
	log.Warnf("warn %d", 3)
	log.Error("error")

	s.Equal(5, logs.Len())
	s.NoError(log.Sync())
}

func (s *LoggerTestSuite) TestNop() {
	log := NewNop()
	s.NotPanics(func() {
		log.With(String("k", "v")).Error("discarded")
	})
}
