package cell

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/maskforge/maskforge/pkg/kernel"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// Context carries the collaborators every component factory needs: the
// cell cache, the active PDK, the geometry kernel, and an optional
// logger. Factories receive it explicitly; nothing in the core reads
// global state except the Default convenience context.
type Context struct {
	Cache  *Cache
	PDK    *pdk.PDK
	Kernel kernel.Kernel
	Logger *log.Logger
}

// NewContext returns a context with a fresh cache, the embedded default
// PDK, and the software kernel. The logger is nil (silent).
func NewContext() *Context {
	return &Context{
		Cache:  NewCache(),
		PDK:    pdk.Default(),
		Kernel: kernel.NewSoftware(),
	}
}

// NewBuilder returns a layout builder wired with the context's logger, so
// diagnostics recorded during the build are also logged.
func (c *Context) NewBuilder(name string) *layout.Builder {
	b := layout.NewBuilder(name)
	b.SetLogger(c.Logger)
	return b
}

var (
	defaultOnce    sync.Once
	defaultContext *Context
)

// Default returns the shared process-wide context. Library code should
// prefer an explicit Context; Default exists for short programs and
// examples.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultContext = NewContext()
	})
	return defaultContext
}
