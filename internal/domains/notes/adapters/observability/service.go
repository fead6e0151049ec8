package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

const tracerName = "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/observability/service"

// Service decorates the notes service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core notes service.
func New(inner ports.Service, opts ...Option) *Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateNote(ctx context.Context, actor notetypes.Actor, input notetypes.NoteInput) (*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.CreateNote", trace.WithAttributes(attribute.Int64("actor.id", actor.UserID)))
	defer span.End()

	s.logInfo(ctx, "creating note", slog.Int64("actor.id", actor.UserID))
	note, err := s.inner.CreateNote(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create note", slog.Int64("actor.id", actor.UserID))
	}
	span.SetAttributes(attribute.Int64("note.id", note.ID))
	s.metrics.recordCreated(ctx, actor.UserID, 1)
	s.logInfo(ctx, "note created", slog.Int64("note.id", note.ID), slog.Int64("actor.id", actor.UserID))
	return note, nil
}

func (s *Service) CreateNotes(ctx context.Context, actor notetypes.Actor, inputs []notetypes.NoteInput) ([]*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.CreateNotes",
		trace.WithAttributes(attribute.Int64("actor.id", actor.UserID), attribute.Int("notes.count", len(inputs))))
	defer span.End()

	s.logInfo(ctx, "creating notes", slog.Int64("actor.id", actor.UserID), slog.Int("notes.count", len(inputs)))
	notes, err := s.inner.CreateNotes(ctx, actor, inputs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create notes", slog.Int64("actor.id", actor.UserID))
	}
	s.metrics.recordCreated(ctx, actor.UserID, len(notes))
	s.logInfo(ctx, "notes created", slog.Int("notes.count", len(notes)))
	return notes, nil
}

func (s *Service) UpdateNote(ctx context.Context, actor notetypes.Actor, input notetypes.UpdateNoteInput) (*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.UpdateNote",
		trace.WithAttributes(attribute.Int64("note.id", input.ID), attribute.Int64("actor.id", actor.UserID)))
	defer span.End()

	s.logInfo(ctx, "updating note", slog.Int64("note.id", input.ID), slog.Int64("actor.id", actor.UserID))
	note, err := s.inner.UpdateNote(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update note", slog.Int64("note.id", input.ID))
	}
	s.metrics.recordUpdated(ctx, actor.UserID)
	s.logInfo(ctx, "note updated", slog.Int64("note.id", note.ID))
	return note, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.GetByID", trace.WithAttributes(attribute.Int64("note.id", id)))
	defer span.End()

	note, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load note", slog.Int64("note.id", id))
	}
	return note, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Note, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.List")
	defer span.End()

	notes, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list notes")
	}
	span.SetAttributes(attribute.Int("notes.count", len(notes)))
	return notes, nil
}

func (s *Service) Delete(ctx context.Context, actor notetypes.Actor, id int64) error {
	ctx, span := s.tracer.Start(ctx, "NotesService.Delete",
		trace.WithAttributes(attribute.Int64("note.id", id), attribute.Int64("actor.id", actor.UserID)))
	defer span.End()

	s.logInfo(ctx, "deleting note", slog.Int64("note.id", id))
	if err := s.inner.Delete(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete note", slog.Int64("note.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "note deleted", slog.Int64("note.id", id))
	return nil
}

func (s *Service) ArchiveStale(ctx context.Context, cutoff time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "NotesService.ArchiveStale", trace.WithAttributes(attribute.String("cutoff", cutoff.Format(time.RFC3339))))
	defer span.End()

	s.logInfo(ctx, "archiving stale notes", slog.Time("cutoff", cutoff))
	archived, err := s.inner.ArchiveStale(ctx, cutoff)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to archive stale notes")
	}
	span.SetAttributes(attribute.Int("notes.archived", archived))
	s.metrics.recordArchived(ctx, archived)
	s.logInfo(ctx, "stale notes archived", slog.Int("notes.archived", archived))
	return archived, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	notesCreated  metric.Int64Counter
	notesUpdated  metric.Int64Counter
	notesArchived metric.Int64Counter
	notesDeleted  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	notesCreated, _ := m.Int64Counter("notes.service.notes_created", metric.WithDescription("Number of notes created"))
	notesUpdated, _ := m.Int64Counter("notes.service.notes_updated", metric.WithDescription("Number of note updates"))
	notesArchived, _ := m.Int64Counter("notes.service.notes_archived", metric.WithDescription("Number of notes archived by the system actor"))
	notesDeleted, _ := m.Int64Counter("notes.service.notes_deleted", metric.WithDescription("Number of notes deleted"))
	return serviceMetrics{
		notesCreated:  notesCreated,
		notesUpdated:  notesUpdated,
		notesArchived: notesArchived,
		notesDeleted:  notesDeleted,
	}
}

func actorKind(actorID int64) attribute.KeyValue {
	if actorID == trackingdomain.SystemUserID {
		return attribute.String("actor.kind", "system")
	}
	return attribute.String("actor.kind", "user")
}

func (m serviceMetrics) recordCreated(ctx context.Context, actorID int64, count int) {
	if m.notesCreated != nil && count > 0 {
		m.notesCreated.Add(ctx, int64(count), metric.WithAttributes(actorKind(actorID)))
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context, actorID int64) {
	if m.notesUpdated != nil {
		m.notesUpdated.Add(ctx, 1, metric.WithAttributes(actorKind(actorID)))
	}
}

func (m serviceMetrics) recordArchived(ctx context.Context, count int) {
	if m.notesArchived != nil && count > 0 {
		m.notesArchived.Add(ctx, int64(count))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.notesDeleted != nil {
		m.notesDeleted.Add(ctx, 1)
	}
}

var (
	_ ports.Service  = (*Service)(nil)
	_ ports.Archiver = (*Service)(nil)
)
