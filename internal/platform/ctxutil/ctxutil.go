// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores per-request values (correlation ID, request logger,
// verified token claims) in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/libris/internal/platform/sec"
)

// key is unexported so no other package can collide with these entries.
type key uint8

const (
	keyRequestID key = iota
	keyLogger
	keyClaims
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns "" outside of a request.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, keyRequestID)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request logger, or [slog.Default] when none is set.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, keyLogger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithAuthUser attaches verified token claims.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// GetAuthUser returns nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := value[*sec.AuthClaims](ctx, keyClaims)
	return claims
}

// GetUserID returns the token subject, or "" for anonymous requests.
func GetUserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

// GetRole returns the caller's role. Anonymous callers get the empty role,
// which ranks below every named role.
func GetRole(ctx context.Context) sec.UserRole {
	if claims := GetAuthUser(ctx); claims != nil {
		return sec.UserRole(claims.Role)
	}
	return ""
}
