// Package downtime owns the durable outage record: one plain-text line per
// detected outage window, in a file rotated daily at local midnight.
package downtime

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// timeLayout matches the heartbeat files: ISO-8601 at second resolution.
const timeLayout = "2006-01-02T15:04:05"

// Log appends outage lines of the form
//
//	<emission ts> <target> down between <start> and <end>
//
// to a midnight-rotating file. It is safe for concurrent use by multiple
// monitor loops; each line is self-contained.
type Log struct {
	logger *zap.Logger
	file   *rotatingFile
}

// Open creates or reopens the downtime log at path. Failure to open is fatal
// to the caller: the monitor cannot keep its promise without the sink.
func Open(path string) (*Log, error) {
	rf, err := newRotatingFile(path)
	if err != nil {
		return nil, fmt.Errorf("downtime log: %w", err)
	}

	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(timeLayout))
		},
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), rf, zapcore.WarnLevel)
	return &Log{logger: zap.New(core), file: rf}, nil
}

// Outage records one detected outage window for target.
func (l *Log) Outage(target string, start, end time.Time) {
	l.logger.Warn(fmt.Sprintf("%s down between %s and %s",
		target, start.Format(timeLayout), end.Format(timeLayout)))
}

func (l *Log) Close() error {
	return multierr.Append(l.logger.Sync(), l.file.Close())
}
