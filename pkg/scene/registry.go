package scene

import (
	"fmt"
	"sort"
)

// Builder constructs a scene. Scenes with random content derive it from seed.
type Builder func(seed int64) (*Scene, error)

// BuiltinScene describes a scene that is compiled into the binary
type BuiltinScene struct {
	Name        string
	Description string
	Build       Builder
}

// Registry maps scene names to builders
type Registry struct {
	scenes map[string]BuiltinScene
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{scenes: make(map[string]BuiltinScene)}
}

// DefaultRegistry returns a registry holding every built-in scene
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("random", "Ground, 10x10 grid of random small spheres and three large spheres",
		func(seed int64) (*Scene, error) { return NewRandomScene(seed) })
	r.Register("default", "Glass, diffuse and metal spheres on a large diffuse ground",
		func(int64) (*Scene, error) { return NewDefaultScene() })
	r.Register("single-sphere", "One grey diffuse sphere under the sky",
		func(int64) (*Scene, error) { return NewSingleSphereScene() })
	return r
}

// Register adds or replaces a scene builder
func (r *Registry) Register(name, description string, build Builder) {
	r.scenes[name] = BuiltinScene{Name: name, Description: description, Build: build}
}

// Lookup builds the named scene
func (r *Registry) Lookup(name string, seed int64) (*Scene, error) {
	entry, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, r.Names())
	}
	return entry.Build(seed)
}

// Names returns the registered scene names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenes returns the registered scenes sorted by name
func (r *Registry) Scenes() []BuiltinScene {
	scenes := make([]BuiltinScene, 0, len(r.scenes))
	for _, name := range r.Names() {
		scenes = append(scenes, r.scenes[name])
	}
	return scenes
}
