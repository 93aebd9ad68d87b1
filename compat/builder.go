// FILE: lixenwraith/logroute/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/logroute"
)

// Builder creates framework adapters backed by loggers of one registry.
// Each adapter gets its own named logger so the module column shows the framework.
type Builder struct {
	registry *log.Registry
	logger   *log.Logger
	settings *log.Settings
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger makes every adapter share l instead of per-framework loggers.
// If this is set WithRegistry and WithSettings are ignored.
func (b *Builder) WithLogger(l *log.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("log/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithRegistry specifies the registry adapters attach their loggers to.
// Without it the process default registry is used.
func (b *Builder) WithRegistry(r *log.Registry) *Builder {
	if r == nil {
		b.err = fmt.Errorf("log/compat: provided registry cannot be nil")
		return b
	}
	b.registry = r
	return b
}

// WithSettings applies s to a fresh registry used by the adapters.
// Used only if no registry was provided via WithRegistry.
func (b *Builder) WithSettings(s *log.Settings) *Builder {
	b.settings = s
	return b
}

// getRegistry resolves the registry to be used, creating one if necessary
func (b *Builder) getRegistry() (*log.Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.registry != nil {
		return b.registry, nil
	}

	if b.settings == nil {
		b.registry = log.Default()
		return b.registry, nil
	}

	r := log.NewRegistry()
	if err := r.ApplySettings(b.settings); err != nil {
		return nil, err
	}

	// Cache the newly created registry for subsequent builds with this builder
	b.registry = r
	return r, nil
}

// loggerFor returns the shared logger or a new one named after the framework
func (b *Builder) loggerFor(name string) (*log.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}
	r, err := b.getRegistry()
	if err != nil {
		return nil, err
	}
	return r.NewLogger(name), nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.loggerFor("gnet")
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that normalizes key=value fields
// found in format strings
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	l, err := b.loggerFor("gnet")
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.loggerFor("fasthttp")
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetRegistry returns the registry adapters attach to, creating it if needed
func (b *Builder) GetRegistry() (*log.Registry, error) {
	return b.getRegistry()
}

// --- Example Usage ---
//
//	// 1. Route everything to a rotating file, suppressing repeated lines for a second
//	if err := log.AddFileOutput().
//		SetFilename("logs/server.log").
//		SetMaxFileSizeString("10MB").
//		SetMaxSkipDuration(time.Second).
//		Apply(); err != nil {
//		panic(err)
//	}
//
//	// 2. Build the adapters against the default registry
//	builder := compat.NewBuilder()
//	gnetLogger, _ := builder.BuildGnet()
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//
//	// 3. Hand them to the frameworks
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	server := &fasthttp.Server{
//		Handler: handler,
//		Logger:  fasthttpLogger,
//	}
//	go server.ListenAndServe(":8080")
