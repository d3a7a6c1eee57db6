package audit

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// ZapLoggerAdapter adapts a zap sugared logger to watermill's LoggerAdapter.
type ZapLoggerAdapter struct {
	logger *zap.SugaredLogger
	fields watermill.LogFields
}

// NewZapLoggerAdapter creates a watermill logger writing to logger.
func NewZapLoggerAdapter(logger *zap.SugaredLogger) watermill.LoggerAdapter {
	return &ZapLoggerAdapter{
		logger: logger,
		fields: make(watermill.LogFields),
	}
}

func (l *ZapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Errorw(msg, l.keyvals(fields, err)...)
}

func (l *ZapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.logger.Infow(msg, l.keyvals(fields, nil)...)
}

func (l *ZapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debugw(msg, l.keyvals(fields, nil)...)
}

func (l *ZapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debugw(msg, l.keyvals(fields, nil)...)
}

func (l *ZapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapLoggerAdapter{
		logger: l.logger,
		fields: l.fields.Add(fields),
	}
}

func (l *ZapLoggerAdapter) keyvals(fields watermill.LogFields, err error) []interface{} {
	keyvals := make([]interface{}, 0, (len(l.fields)+len(fields))*2+2)
	for k, v := range l.fields {
		keyvals = append(keyvals, k, v)
	}
	for k, v := range fields {
		keyvals = append(keyvals, k, v)
	}
	if err != nil {
		keyvals = append(keyvals, "error", err)
	}
	return keyvals
}
