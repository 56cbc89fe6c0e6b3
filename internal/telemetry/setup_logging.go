// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// serviceName labels every log record and the fallback log file so lines
// from the analysis server are attributable when aggregated with other
// services' output.
const serviceName = "content-intel"

// traceContextHandler injects the active trace and span ids into every log
// record so Cloud Logging correlates log lines with traces.
type traceContextHandler struct {
	slog.Handler
}

func withTraceContext(handler slog.Handler) *traceContextHandler {
	return &traceContextHandler{Handler: handler}
}

func (h *traceContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if s := trace.SpanContextFromContext(ctx); s.IsValid() {
		// Field names per the Cloud Logging structured log format.
		record.AddAttrs(
			slog.Any("logging.googleapis.com/trace", s.TraceID()),
			slog.Any("logging.googleapis.com/spanId", s.SpanID()),
			slog.Bool("logging.googleapis.com/trace_sampled", s.TraceFlags().IsSampled()),
		)
	}
	return h.Handler.Handle(ctx, record)
}

// cloudLoggingKeys renames slog's default keys to the ones Cloud Logging
// expects.
func cloudLoggingKeys(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if level := a.Value.Any().(slog.Level); level == slog.LevelWarn {
			a.Value = slog.StringValue("WARNING")
		}
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// SetupLogging installs a JSON slog handler writing to stdout and the local
// log file, with trace correlation attached to every record and the service
// name stamped on the default logger. Records from the legacy log package
// are routed through slog at info level.
func SetupLogging() {
	file, _ := os.Create(serviceName + ".log")
	sink := io.MultiWriter(os.Stdout, file)

	log.SetOutput(sink)
	log.SetPrefix("[" + serviceName + "] ")
	log.SetFlags(log.Ldate | log.Ltime)

	handler := withTraceContext(slog.NewJSONHandler(sink, &slog.HandlerOptions{ReplaceAttr: cloudLoggingKeys}))
	slog.SetDefault(slog.New(handler).With(slog.String("service", serviceName)))
	slog.SetLogLoggerLevel(slog.LevelInfo)
}
