package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	notehttpmapper "github.com/Apurer/dbmodel-tracking/internal/domains/notes/adapters/http/mapper"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/application"
	notetypes "github.com/Apurer/dbmodel-tracking/internal/domains/notes/application/types"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/domain"
	"github.com/Apurer/dbmodel-tracking/internal/domains/notes/ports"
	"github.com/Apurer/dbmodel-tracking/internal/platform/auth"
	apierrors "github.com/Apurer/dbmodel-tracking/internal/shared/errors"
	trackingmapper "github.com/Apurer/dbmodel-tracking/internal/tracking/adapters/http/mapper"
)

// view renders notes in the shape of one API version.
type view struct {
	one  func(*domain.Note) any
	many func([]*domain.Note) any
}

var (
	viewV1 = view{
		one:  func(n *domain.Note) any { return notehttpmapper.FromDomainV1(n) },
		many: func(ns []*domain.Note) any { return notehttpmapper.FromDomainListV1(ns) },
	}
	viewV2 = view{
		one:  func(n *domain.Note) any { return notehttpmapper.FromDomainV2(n) },
		many: func(ns []*domain.Note) any { return notehttpmapper.FromDomainListV2(ns) },
	}
)

// NotesAPI wires HTTP transport with the notes service.
type NotesAPI struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewNotesAPI creates a NotesAPI. A nil responder falls back to NewResponder.
func NewNotesAPI(service ports.Service, responder *apierrors.Responder) *NotesAPI {
	if responder == nil {
		responder = NewResponder()
	}
	return &NotesAPI{service: service, responder: responder}
}

// NewResponder builds the problem responder for the notes routes. Tracking
// preconditions are mapped before the notes errors so that an update on
// untracked data surfaces as 422 rather than a generic validation error.
func NewResponder() *apierrors.Responder {
	return apierrors.NewResponder(trackingmapper.ProblemFromError, ProblemFromError)
}

// ProblemFromError maps notes application errors onto HTTP problems.
func ProblemFromError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

// Register mounts both API versions under /api. The versions differ only in how
// the tracked metadata is rendered.
func (api *NotesAPI) Register(router gin.IRouter) {
	api.registerVersion(router.Group("/api/v1/notes"), viewV1)
	api.registerVersion(router.Group("/api/v2/notes"), viewV2)
}

func (api *NotesAPI) registerVersion(group *gin.RouterGroup, v view) {
	group.POST("", api.createNote(v))
	group.POST("/batch", api.createNotes(v))
	group.GET("", api.listNotes(v))
	group.GET("/:id", api.getNote(v))
	group.PUT("/:id", api.updateNote(v))
	group.DELETE("/:id", api.deleteNote)
}

// Post /api/v{1,2}/notes
func (api *NotesAPI) createNote(v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload notehttpmapper.CreateNote
		if err := c.ShouldBindJSON(&payload); err != nil {
			api.responder.BadRequest(c, err.Error())
			return
		}
		note, err := api.service.CreateNote(c.Request.Context(), actorFromContext(c), notehttpmapper.ToNoteInput(payload))
		if err != nil {
			api.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v.one(note))
	}
}

// Post /api/v{1,2}/notes/batch
func (api *NotesAPI) createNotes(v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload []notehttpmapper.CreateNote
		if err := c.ShouldBindJSON(&payload); err != nil {
			api.responder.BadRequest(c, err.Error())
			return
		}
		notes, err := api.service.CreateNotes(c.Request.Context(), actorFromContext(c), notehttpmapper.ToNoteInputs(payload))
		if err != nil {
			api.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v.many(notes))
	}
}

// Put /api/v{1,2}/notes/:id
func (api *NotesAPI) updateNote(v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := api.parseIDParam(c, "id")
		if !ok {
			return
		}
		var payload notehttpmapper.UpdateNote
		if err := c.ShouldBindJSON(&payload); err != nil {
			api.responder.BadRequest(c, err.Error())
			return
		}
		note, err := api.service.UpdateNote(c.Request.Context(), actorFromContext(c), notehttpmapper.ToUpdateInput(id, payload))
		if err != nil {
			api.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v.one(note))
	}
}

// Get /api/v{1,2}/notes/:id
func (api *NotesAPI) getNote(v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := api.parseIDParam(c, "id")
		if !ok {
			return
		}
		note, err := api.service.GetByID(c.Request.Context(), id)
		if err != nil {
			api.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v.one(note))
	}
}

// Get /api/v{1,2}/notes
func (api *NotesAPI) listNotes(v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := api.service.List(c.Request.Context())
		if err != nil {
			api.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v.many(notes))
	}
}

// Delete /api/v{1,2}/notes/:id
func (api *NotesAPI) deleteNote(c *gin.Context) {
	id, ok := api.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// actorFromContext builds the actor for the request. Anonymous requests get an
// actor without identity, which the service rejects on writes.
func actorFromContext(c *gin.Context) notetypes.Actor {
	principal := auth.PrincipalFromContext(c)
	if principal == nil {
		return notetypes.Actor{}
	}
	return notetypes.Actor{Identity: principal, UserID: principal.UserID}
}

func (api *NotesAPI) parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		api.responder.BadRequest(c, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return id, true
}
