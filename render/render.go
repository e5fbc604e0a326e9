// Package render turns style profile into output documents.
package render

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"wse/common"
	"wse/style"
)

var (
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrTemplateMissing = errors.New("template is missing")
)

const (
	// ExtractorVersion is reported inside generated documents.
	ExtractorVersion = "1.0"

	stampLayout = "2006-01-02 15:04:05"
)

// Renderer produces a single document from profile.
type Renderer interface {
	Render(p *style.Profile) (string, error)
}

// RendererFunc adapts function to Renderer.
type RendererFunc func(p *style.Profile) (string, error)

func (f RendererFunc) Render(p *style.Profile) (string, error) { return f(p) }

// Options controls built-in renderers.
type Options struct {
	// Now is the clock used for timestamps, time.Now when nil.
	Now func() time.Time
	// Templates used by template driven formats, built-in set when nil.
	Templates *TemplateSet
	Log       *zap.Logger
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Registry dispatches rendering by output format.
type Registry struct {
	renderers map[common.OutputFmt]Renderer
}

// NewRegistry creates registry with every built-in format registered.
func NewRegistry(opts Options) *Registry {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Templates == nil {
		opts.Templates = DefaultTemplates()
	}

	r := &Registry{renderers: make(map[common.OutputFmt]Renderer)}
	r.Register(common.OutputFmtJson, &jsonRenderer{opts: opts})
	r.Register(common.OutputFmtCss, &cssRenderer{opts: opts})
	r.Register(common.OutputFmtModernCss, &modernCSSRenderer{opts: opts})
	r.Register(common.OutputFmtTailwind, &tailwindRenderer{opts: opts})
	r.Register(common.OutputFmtDesignTokens, &tokensRenderer{opts: opts})
	for _, f := range common.OutputFmtValues() {
		if f.TemplateDriven() {
			r.Register(f, &templateRenderer{format: f, set: opts.Templates, log: opts.Log.Named("template")})
		}
	}
	return r
}

// Register adds or replaces renderer for format.
func (r *Registry) Register(f common.OutputFmt, rr Renderer) {
	r.renderers[f] = rr
}

// Formats lists registered formats in enumeration order.
func (r *Registry) Formats() []common.OutputFmt {
	res := make([]common.OutputFmt, 0, len(r.renderers))
	for f := range r.renderers {
		res = append(res, f)
	}
	slices.Sort(res)
	return res
}

// Render produces document for the requested format.
func (r *Registry) Render(f common.OutputFmt, p *style.Profile) (string, error) {
	rr, ok := r.renderers[f]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	out, err := rr.Render(p)
	if err != nil {
		return "", fmt.Errorf("unable to render %s: %w", f, err)
	}
	return out, nil
}
