package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse/query"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/reqctx"
)

// slowQuery is the threshold above which queries are logged at WARN
const slowQuery = 500 * time.Millisecond

type queryStartKey struct{}

// queryTrace is carried from TraceQueryStart to TraceQueryEnd
type queryTrace struct {
	start time.Time
	sql   string
	args  int
}

// QueryLogger implements pgx.QueryTracer for logging database queries.
// Connection events go through tracelog with the zerolog adapter.
type QueryLogger struct {
	logger  zerolog.Logger
	connLog *tracelog.TraceLog
}

// NewQueryLogger creates a new query logger; level gates connection events
func NewQueryLogger(logger zerolog.Logger, level string) *QueryLogger {
	return &QueryLogger{
		logger: logger,
		connLog: &tracelog.TraceLog{
			Logger:   NewPgxZerologAdapter(logger),
			LogLevel: traceLogLevel(level),
		},
	}
}

func traceLogLevel(level string) tracelog.LogLevel {
	switch level {
	case "error":
		return tracelog.LogLevelError
	case "warn":
		return tracelog.LogLevelWarn
	case "info":
		return tracelog.LogLevelInfo
	default:
		return tracelog.LogLevelDebug
	}
}

// TraceQueryStart is called at the beginning of Query, QueryRow, and Exec calls
func (ql *QueryLogger) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryTrace{
		start: time.Now(),
		sql:   data.SQL,
		args:  len(data.Args),
	})
}

// TraceQueryEnd is called at the end of Query, QueryRow, and Exec calls
func (ql *QueryLogger) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	trace, ok := ctx.Value(queryStartKey{}).(queryTrace)
	if !ok {
		trace.start = time.Now()
	}
	duration := time.Since(trace.start)

	var event *zerolog.Event
	switch {
	case data.Err != nil:
		event = ql.logger.Error().Err(data.Err)
	case duration > slowQuery:
		event = ql.logger.Warn()
	default:
		event = ql.logger.Debug()
	}

	if id := reqctx.RequestID(ctx); id != "" {
		event = event.Str("request_id", id)
	}

	event.
		Str("sql", query.Describe(trace.sql)).
		Int("params", trace.args).
		Int64("duration_ms", duration.Milliseconds()).
		Str("command_tag", data.CommandTag.String()).
		Msg("Query executed")
}

// TraceConnectStart implements pgx.ConnectTracer
func (ql *QueryLogger) TraceConnectStart(ctx context.Context, data pgx.TraceConnectStartData) context.Context {
	return ql.connLog.TraceConnectStart(ctx, data)
}

// TraceConnectEnd implements pgx.ConnectTracer
func (ql *QueryLogger) TraceConnectEnd(ctx context.Context, data pgx.TraceConnectEndData) {
	ql.connLog.TraceConnectEnd(ctx, data)
}

// PgxZerologAdapter adapts zerolog.Logger to pgx's tracelog.Logger interface
type PgxZerologAdapter struct {
	logger zerolog.Logger
}

// NewPgxZerologAdapter creates a new adapter
func NewPgxZerologAdapter(logger zerolog.Logger) *PgxZerologAdapter {
	return &PgxZerologAdapter{logger: logger}
}

// Log implements tracelog.Logger
func (l *PgxZerologAdapter) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	var event *zerolog.Event

	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info()
	}

	if id := reqctx.RequestID(ctx); id != "" {
		event = event.Str("request_id", id)
	}
	for key, value := range data {
		event = event.Interface(key, value)
	}

	event.Msg(msg)
}
