// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxStatementLength bounds the SQL text copied onto a span.
const maxStatementLength = 512

// QueryTracer turns every pgx query into a client span nested under the
// request span. Bind arguments are never recorded.
type QueryTracer struct {
	tracer trace.Tracer
}

// NewQueryTracer builds a tracer on the global provider.
func NewQueryTracer() *QueryTracer {
	return &QueryTracer{tracer: otel.Tracer("libris/postgres")}
}

// TraceQueryStart implements [pgx.QueryTracer].
func (queryTracer *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	statement := strings.TrimSpace(data.SQL)
	if len(statement) > maxStatementLength {
		statement = statement[:maxStatementLength]
	}

	ctx, _ = queryTracer.tracer.Start(ctx, "db."+operation(statement),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", statement),
			attribute.Int("db.args", len(data.Args)),
		),
	)
	return ctx
}

// TraceQueryEnd implements [pgx.QueryTracer].
func (queryTracer *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))

	// A miss is an expected outcome for lookups
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	}
}

// operation is the leading SQL keyword in lower case ("select", "insert").
func operation(statement string) string {
	keyword, _, _ := strings.Cut(statement, " ")
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return "query"
	}
	return keyword
}
