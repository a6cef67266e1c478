package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const fatalFlushTimeout = 5 * time.Second

type OTELLogger struct {
	logger   otellog.Logger
	provider *sdklog.LoggerProvider
}

func initializeOtelLogger(collectorEndpoint, serviceName string) (Logger, error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(
		collectorEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	exporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return &OTELLogger{
		logger:   provider.Logger(serviceName),
		provider: provider,
	}, nil
}

func severity(level LogLevel) otellog.Severity {
	switch level {
	case LogLevelDebug:
		return otellog.SeverityDebug
	case LogLevelInfo:
		return otellog.SeverityInfo
	case LogLevelWarn:
		return otellog.SeverityWarn
	case LogLevelError:
		return otellog.SeverityError
	case LogLevelFatal:
		return otellog.SeverityFatal
	}
	return otellog.SeverityUndefined
}

// keyValue maps an attribute onto the closest OTLP value type.
func keyValue(key string, value any) otellog.KeyValue {
	switch v := value.(type) {
	case string:
		return otellog.String(key, v)
	case bool:
		return otellog.Bool(key, v)
	case int:
		return otellog.Int(key, v)
	case int32:
		return otellog.Int64(key, int64(v))
	case int64:
		return otellog.Int64(key, v)
	case uint64:
		return otellog.Int64(key, int64(v))
	case float64:
		return otellog.Float64(key, v)
	case time.Duration:
		return otellog.String(key, v.String())
	case time.Time:
		return otellog.String(key, v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.String(key, v.Error())
	case []string:
		values := make([]otellog.Value, len(v))
		for i, s := range v {
			values[i] = otellog.StringValue(s)
		}
		return otellog.Slice(key, values...)
	case fmt.Stringer:
		return otellog.String(key, v.String())
	}
	return otellog.String(key, fmt.Sprintf("%v", value))
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	var record otellog.Record
	record.SetTimestamp(entry.Timestamp)
	record.SetBody(otellog.StringValue(entry.Message))
	record.SetSeverityText(string(entry.Level))
	record.SetSeverity(severity(entry.Level))

	attrs := make([]otellog.KeyValue, 0, len(entry.Attributes)+2)
	for key, value := range entry.Attributes {
		attrs = append(attrs, keyValue(key, value))
	}
	if entry.Error != nil {
		attrs = append(attrs, otellog.String("error", entry.Error.Error()))
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, otellog.String("request_id", requestID))
	}

	record.AddAttributes(attrs...)
	l.logger.Emit(ctx, record)

	if entry.Level == LogLevelFatal {
		flushCtx, cancel := context.WithTimeout(context.Background(), fatalFlushTimeout)
		_ = l.provider.Shutdown(flushCtx)
		cancel()
		os.Exit(1)
	}
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}
