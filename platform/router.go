package platform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Daskott/sosphone/logger"
	"github.com/google/uuid"
)

var (
	ErrDuplicateHandler = errors.New("handler for the given request kind already registered")
	ErrNoHandler        = errors.New("no handler registered for request")

	logg = logger.NewLogger()
)

type Handler func(Request) error

type Dispatcher interface {
	// CanHandle reports whether something is able to carry out req
	CanHandle(req Request) bool

	// Dispatch hands req off. Once dispatched, the caller has no further control over it.
	Dispatch(req Request) error
}

// Router is a Dispatcher that hands each request to the handler registered for its kind
type Router struct {
	handlers map[Kind]Handler
}

func NewRouter() *Router {
	return &Router{handlers: make(map[Kind]Handler)}
}

// Register binds a request kind to a handler.
func (r *Router) Register(kind Kind, handler Handler) error {
	if _, ok := r.handlers[kind]; ok {
		return ErrDuplicateHandler
	}

	r.handlers[kind] = handler
	return nil
}

// Kinds returns the request kinds with a registered handler
func (r *Router) Kinds() []Kind {
	kinds := []Kind{}
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Router) CanHandle(req Request) bool {
	_, ok := r.handlers[req.Kind()]
	return ok
}

func (r *Router) Dispatch(req Request) error {
	handler, ok := r.handlers[req.Kind()]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoHandler, req.Kind())
	}

	id := uuid.NewString()
	logg.Infof("dispatching %v request id=%v uri=%v", req.Kind(), id, req.URI())

	err := handler(req)
	if err != nil {
		return fmt.Errorf("%v request id=%v failed: %w", req.Kind(), id, err)
	}

	return nil
}
