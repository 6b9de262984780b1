// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/internal/metadata"
	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/fold"
	"github.com/taibuivan/libris/pkg/isbn"
	"github.com/taibuivan/libris/pkg/pointer"
	"github.com/taibuivan/libris/pkg/uuid"
)

// # Registration

// Registrar runs the ingestion pipeline that turns a raw ISBN into a
// persisted, enriched [Volume].
type Registrar struct {
	repo     Repository
	source   metadata.Source
	resolver EntityResolver
	timeout  time.Duration
	logger   *slog.Logger
	tracer   trace.Tracer

	now   func() time.Time
	newID func() string
}

// NewRegistrar constructs a [Registrar]. timeout bounds each metadata lookup.
func NewRegistrar(repo Repository, source metadata.Source, resolver EntityResolver, timeout time.Duration, logger *slog.Logger) *Registrar {
	return &Registrar{
		repo:     repo,
		source:   source,
		resolver: resolver,
		timeout:  timeout,
		logger:   logger,
		tracer:   otel.Tracer("libris/volume"),
		now:      time.Now,
		newID:    uuid.New,
	}
}

/*
Register ingests a volume by ISBN.

Description: The pipeline runs in order and stops at the first failure:
 1. Normalize and classify the input.
 2. Reject an ISBN that is already registered.
 3. Fetch metadata under the configured deadline. E-books are refused.
 4. Backfill the missing ISBN form.
 5. Resolve authors, then categories.
 6. Bound the title and published date.
 7. Persist the volume and its links atomically.

Concurrent registrations of the same ISBN both pass step 2; the store's unique
indexes let one of them win and the loser reports the winner's ID.

Parameters:
  - ctx: context.Context
  - raw: string (user supplied ISBN, hyphens and spaces allowed)

Returns:
  - *Volume: The persisted volume
  - error: INVALID_ISBN, VOLUME_ALREADY_REGISTERED, EMPTY_API_RESPONSE, EBOOK_TYPE,
    METADATA_TIMEOUT, METADATA_UNAVAILABLE, or storage errors
*/
func (registrar *Registrar) Register(ctx context.Context, raw string) (*Volume, error) {
	ctx, span := registrar.tracer.Start(ctx, "volume.register")
	defer span.End()

	volume, err := registrar.register(ctx, span, raw)
	if err != nil {
		span.RecordError(err)
		if ae := apperr.As(err); ae != nil {
			span.SetAttributes(attribute.String("error.code", ae.Code))
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("volume.id", volume.ID))
	return volume, nil
}

func (registrar *Registrar) register(ctx context.Context, span trace.Span, raw string) (*Volume, error) {

	// 1. Classify
	normalized := isbn.Normalize(raw)
	kind := isbn.Classify(normalized)
	if kind == isbn.Invalid {
		return nil, apperr.InvalidISBN(raw)
	}
	span.SetAttributes(
		attribute.String("isbn", normalized),
		attribute.String("isbn.kind", kind.String()),
	)

	// 2. Duplicate check by the classified form
	existing, err := registrar.findByForm(ctx, kind, normalized)
	if err == nil {
		return nil, apperr.AlreadyRegistered(existing.ID)
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	// 3. Metadata
	record, err := registrar.fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}
	span.AddEvent("metadata.fetched")

	// 4. Backfill
	isbn10, isbn13 := registrar.backfill(kind, normalized, record)

	// 5. Resolve references
	authors, err := registrar.resolver.Resolve(ctx, reference.KindAuthor, record.Authors)
	if err != nil {
		return nil, err
	}
	categories, err := registrar.resolver.Resolve(ctx, reference.KindCategory, record.Categories)
	if err != nil {
		return nil, err
	}
	span.AddEvent("references.resolved", trace.WithAttributes(
		attribute.Int("authors", len(authors)),
		attribute.Int("categories", len(categories)),
	))

	// 6. Assemble with bounded fields
	now := registrar.now().UTC()
	volume := &Volume{
		ID:            registrar.newID(),
		Title:         fold.Truncate(fold.Clean(record.Title), constants.MaxTitleLength),
		ISBN10:        isbn10,
		ISBN13:        isbn13,
		PublishedDate: fold.Truncate(record.PublishedDate, constants.PublishedYearLength),
		Language:      record.Language,
		Authors:       authors,
		Categories:    categories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 7. Persist
	if err := registrar.repo.Create(ctx, volume); err != nil {
		if errors.Is(err, dberr.ErrConflict) {
			return nil, registrar.conflictWinner(ctx, volume)
		}
		return nil, err
	}

	registrar.logger.InfoContext(ctx, "volume_registered",
		slog.String("volume_id", volume.ID),
		slog.String("isbn", volume.ISBN()),
		slog.Int("authors", len(volume.Authors)),
		slog.Int("categories", len(volume.Categories)),
	)
	return volume, nil
}

// findByForm looks a volume up in the column matching kind.
func (registrar *Registrar) findByForm(ctx context.Context, kind isbn.Kind, normalized string) (*Volume, error) {
	if kind == isbn.Ten {
		return registrar.repo.FindByISBN10(ctx, normalized)
	}
	return registrar.repo.FindByISBN13(ctx, normalized)
}

/*
fetch performs the bounded metadata lookup and maps its outcome to catalog errors.

A record without a title is treated like a miss: nothing usable came back.
*/
func (registrar *Registrar) fetch(ctx context.Context, normalized string) (*metadata.Record, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, registrar.timeout)
	defer cancel()

	record, err := registrar.source.Lookup(lookupCtx, normalized)
	switch {
	case err == nil:
	case errors.Is(err, metadata.ErrNotFound):
		return nil, apperr.EmptyAPIResponse(normalized)
	case errors.Is(err, context.DeadlineExceeded):
		registrar.logger.WarnContext(ctx, "metadata_lookup_failed",
			slog.String("isbn", normalized),
			slog.String("reason", "timeout"),
			slog.Duration("timeout", registrar.timeout),
		)
		return nil, apperr.MetadataTimeout(err)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		registrar.logger.WarnContext(ctx, "metadata_lookup_failed",
			slog.String("isbn", normalized),
			slog.String("reason", "unavailable"),
			slog.Any("error", err),
		)
		return nil, apperr.MetadataUnavailable(err)
	}

	if record.IsEbook {
		return nil, apperr.EbookType(normalized)
	}
	if fold.Clean(record.Title) == "" {
		return nil, apperr.EmptyAPIResponse(normalized)
	}
	return record, nil
}

/*
backfill decides the stored ISBN pair.

The typed ISBN always keeps its own slot, so the volume stays reachable by
what the user registered. The record supplies the other form only when it
describes the same edition, that is when its identifier of the typed form is
absent or equal to the input. Otherwise, or when the record lists no
checksum-valid other form, that form is derived by conversion. A 979-prefixed
ISBN-13 has no ISBN-10 and stays alone.
*/
func (registrar *Registrar) backfill(kind isbn.Kind, normalized string, record *metadata.Record) (*string, *string) {
	var isbn10, isbn13 *string
	switch kind {
	case isbn.Ten:
		isbn10 = pointer.To(normalized)
		if sameEdition(record.ISBN10, normalized) {
			isbn13 = validForm(record.ISBN13, isbn.ValidThirteen)
		}
	case isbn.Thirteen:
		isbn13 = pointer.To(normalized)
		if sameEdition(record.ISBN13, normalized) {
			isbn10 = validForm(record.ISBN10, isbn.ValidTen)
		}
	}

	switch {
	case isbn13 == nil && isbn10 != nil:
		derived, err := isbn.To13(*isbn10)
		if err != nil {
			registrar.skipBackfill(*isbn10, isbn.Thirteen, err)
			break
		}
		isbn13 = pointer.To(derived)

	case isbn10 == nil && isbn13 != nil:
		derived, ok := isbn.To10(*isbn13)
		if !ok {
			registrar.skipBackfill(*isbn13, isbn.Ten, errors.New("no isbn-10 equivalent"))
			break
		}
		isbn10 = pointer.To(derived)
	}

	return isbn10, isbn13
}

func (registrar *Registrar) skipBackfill(from string, target isbn.Kind, cause error) {
	registrar.logger.Info("isbn_backfill_skipped",
		slog.String("isbn", from),
		slog.String("target", target.String()),
		slog.String("reason", cause.Error()),
	)
}

// sameEdition reports whether the record's identifier of the typed form is
// missing or matches the typed ISBN.
func sameEdition(reported, normalized string) bool {
	reported = isbn.Normalize(reported)
	return reported == "" || reported == normalized
}

// validForm normalizes an identifier reported by the metadata source and
// keeps it only when its checksum holds.
func validForm(reported string, valid func(string) bool) *string {
	normalized := isbn.Normalize(reported)
	if normalized == "" || !valid(normalized) {
		return nil
	}
	return &normalized
}

/*
conflictWinner resolves a unique violation raised at persist time.

Another registration stored one of our ISBNs between the duplicate check and
the insert. The winner is looked up by either form so the caller gets its ID.
*/
func (registrar *Registrar) conflictWinner(ctx context.Context, volume *Volume) error {
	lookups := []struct {
		value *string
		find  func(context.Context, string) (*Volume, error)
	}{
		{volume.ISBN10, registrar.repo.FindByISBN10},
		{volume.ISBN13, registrar.repo.FindByISBN13},
	}

	for _, lookup := range lookups {
		if lookup.value == nil {
			continue
		}
		winner, err := lookup.find(ctx, *lookup.value)
		if err == nil {
			registrar.logger.InfoContext(ctx, "volume_register_raced",
				slog.String("isbn", volume.ISBN()),
				slog.String("winner_id", winner.ID),
			)
			return apperr.AlreadyRegistered(winner.ID)
		}
		if !errors.Is(err, dberr.ErrNotFound) {
			return err
		}
	}

	return apperr.Internal(fmt.Errorf("volume: unique violation for %s but no owning volume found", volume.ISBN()))
}
