package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contentstudio/studio/handler"
	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/binder"
	"github.com/contentstudio/studio/pkg/jwt"
)

// Module serves the history routes. They must be mounted behind the
// session guard.
type Module struct {
	svc  *Service
	errs *handler.Errors
}

func NewModule(svc *Service, errs *handler.Errors) *Module {
	return &Module{svc: svc, errs: errs}
}

// Routes mounts the history endpoints on r.
func (m *Module) Routes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", handler.Wrap(m.list, handler.WithErrorHandler[struct{}](m.errs.Handle)))
		r.Post("/", handler.Wrap(m.save,
			handler.WithBinders[Draft](binder.Bind),
			handler.WithErrorHandler[Draft](m.errs.Handle),
		))
		r.Get("/{id}", handler.Wrap(m.get, handler.WithErrorHandler[struct{}](m.errs.Handle)))
		r.Delete("/{id}", handler.Wrap(m.remove, handler.WithErrorHandler[struct{}](m.errs.Handle)))
	})
}

func owner(ctx handler.Context) (string, error) {
	email, ok := jwt.GetSubject(ctx)
	if !ok {
		return "", auth.ErrInvalidSession
	}
	return email, nil
}

// recordID parses the {id} URL parameter. Malformed IDs cannot name a
// record, so they read as not found.
func recordID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, ErrRecordNotFound
	}
	return id, nil
}

func (m *Module) list(ctx handler.Context, _ struct{}) handler.Response {
	email, err := owner(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	records, err := m.svc.List(ctx, email)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(records)
}

func (m *Module) save(ctx handler.Context, d Draft) handler.Response {
	email, err := owner(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	rec, err := m.svc.Save(ctx, email, d)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(rec, handler.WithStatus(http.StatusCreated))
}

func (m *Module) get(ctx handler.Context, _ struct{}) handler.Response {
	email, err := owner(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	id, err := recordID(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	rec, err := m.svc.Get(ctx, email, id)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(rec)
}

func (m *Module) remove(ctx handler.Context, _ struct{}) handler.Response {
	email, err := owner(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	id, err := recordID(ctx.Request())
	if err != nil {
		return handler.Fail(err)
	}
	if err := m.svc.Delete(ctx, email, id); err != nil {
		return handler.Fail(err)
	}
	return handler.Message(m.errs.Message(ctx.Request(), "messages.record_deleted"))
}
