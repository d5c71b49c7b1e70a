package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/hxmotion/internal/dispatcher/handler"
)

// Router routes actions to namespace handlers by their prefix.
// Several handlers may share a namespace; the first one registered that
// can handle an action wins.
type Router struct {
	mu         sync.RWMutex
	namespaces map[string][]handler.NamespaceHandler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string][]handler.NamespaceHandler),
	}
}

// RegisterNamespace adds a handler for actions in namespace.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = append(r.namespaces[namespace], h)
}

// Route finds the handler for an action, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h := r.lookupLocked(actionName); h != nil {
		return handler.NewNamespaceAdapter(h)
	}
	return nil
}

func (r *Router) lookupLocked(actionName string) handler.NamespaceHandler {
	namespace := extractNamespace(actionName)
	if namespace == "" {
		return nil
	}
	for _, h := range r.namespaces[namespace] {
		if h.CanHandle(actionName) {
			return h
		}
	}
	return nil
}

// CanRoute returns true if the router can handle the action.
func (r *Router) CanRoute(actionName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(actionName) != nil
}

// extractNamespace extracts the namespace from "namespace.action".
func extractNamespace(actionName string) string {
	namespace, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return ""
	}
	return namespace
}
