// Package nodes is the view engine: it turns trees of model.Node into
// styled terminal output by dispatching each node to a renderer registered
// under the node's variant string, and it builds those trees from the flat
// parent-pointer records the store returns.
package nodes

import (
	"sort"
	"sync"
)

// Renderer produces the styled output for a single node. Implementations
// must be pure: no I/O, no mutation of the node. Child output is composed
// by the engine, not the renderer, unless the renderer opts in via
// ContainerRenderer.
type Renderer interface {
	Render(n Ctx) string
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(n Ctx) string

// Render implements Renderer.
func (f RendererFunc) Render(n Ctx) string { return f(n) }

// Registry maps variant names to renderers. Unknown variants resolve to
// the fallback renderer so a bad variant string degrades to a debug dump
// instead of dropping the node.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Renderer
	fallback Renderer
}

// NewRegistry returns an empty registry with the debug renderer as fallback.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]Renderer),
		fallback: RendererFunc(renderDebug),
	}
}

// Register binds a renderer to a variant name, replacing any previous
// binding. Empty names are ignored.
func (r *Registry) Register(variant string, renderer Renderer) {
	if variant == "" || renderer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[variant] = renderer
}

// Alias makes alias resolve to whatever target is bound to right now.
// The binding is captured at alias time: re-registering the target later
// does not retarget existing aliases. Unknown targets are ignored.
func (r *Registry) Alias(alias, target string) {
	if alias == "" || alias == target {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	renderer, ok := r.byName[target]
	if !ok {
		return
	}
	r.byName[alias] = renderer
}

// SetFallback replaces the renderer used for unknown variants.
func (r *Registry) SetFallback(renderer Renderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = renderer
}

// Resolve returns the renderer for variant and whether it was registered.
// Unregistered variants return the fallback renderer with ok=false.
func (r *Registry) Resolve(variant string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[variant]; ok {
		return renderer, true
	}
	return r.fallback, false
}

// Variants returns the registered variant names, sorted.
func (r *Registry) Variants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
