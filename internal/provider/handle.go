package provider

import "sync"

// Handle is the process-wide provider instance. The engine is built on first
// use, shared by every request afterwards and never torn down. A failed build
// is remembered and returned to every caller.
type Handle struct {
	once   sync.Once
	build  func() (Engine, error)
	engine Engine
	err    error
}

// NewHandle returns a handle that builds its engine lazily with build.
func NewHandle(build func() (Engine, error)) *Handle {
	return &Handle{build: build}
}

// StaticHandle wraps an already constructed engine.
func StaticHandle(engine Engine) *Handle {
	return NewHandle(func() (Engine, error) { return engine, nil })
}

// Engine returns the shared engine, building it on the first call.
func (h *Handle) Engine() (Engine, error) {
	h.once.Do(func() {
		h.engine, h.err = h.build()
	})
	return h.engine, h.err
}
