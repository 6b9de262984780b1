// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"net"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracingHook records one client span per command or pipeline.
type tracingHook struct {
	tracer trace.Tracer
}

func newTracingHook() *tracingHook {
	return &tracingHook{tracer: otel.Tracer("libris/redis")}
}

func (hook *tracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx stdctx.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (hook *tracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx stdctx.Context, cmd redis.Cmder) error {
		ctx, span := hook.start(ctx, "redis."+cmd.Name(), 1)
		defer span.End()

		err := next(ctx, cmd)
		finish(span, err)
		return err
	}
}

func (hook *tracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx stdctx.Context, cmds []redis.Cmder) error {
		ctx, span := hook.start(ctx, "redis.pipeline", len(cmds))
		defer span.End()

		err := next(ctx, cmds)
		finish(span, err)
		return err
	}
}

func (hook *tracingHook) start(ctx stdctx.Context, name string, commands int) (stdctx.Context, trace.Span) {
	return hook.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.Int("db.redis.commands", commands),
		),
	)
}

// finish flags real failures. redis.Nil is a miss, not an error.
func finish(span trace.Span, err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
