// Package render implements the constrained templating language applied to
// template files: variable emission with filters, conditionals, loops, and
// raw blocks. The grammar has no function calls, no arbitrary expressions,
// and no filesystem or network primitives, so evaluating remotely-authored
// templates can only read the variable scope handed to it.
package render

import (
	"context"

	"github.com/skaffio/skaff/internal/debug"
)

// Default resource limits for a single file render.
const (
	// DefaultMaxOutputBytes bounds the rendered output size of one file.
	DefaultMaxOutputBytes = 8 << 20
	// DefaultMaxIterations bounds total loop iterations in one file.
	DefaultMaxIterations = 10000
)

// Options configures rendering behavior.
type Options struct {
	// StrictVars makes undefined variable references fatal instead of
	// empty-with-warning.
	StrictVars bool
	// MaxOutputBytes is the output size budget per file (0 = default).
	MaxOutputBytes int
	// MaxIterations is the loop iteration budget per file (0 = default).
	MaxIterations int
}

// withDefaults fills zero limits with the package defaults.
func (o Options) withDefaults() Options {
	if o.MaxOutputBytes <= 0 {
		o.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Renderer evaluates template text against an immutable variable scope.
type Renderer interface {
	// Render evaluates input and returns the output plus any non-fatal
	// warnings. A returned error is always a *render.Error.
	Render(ctx context.Context, input []byte, vars Variables) ([]byte, []Warning, error)

	// RenderFile is Render with a file path stamped onto errors and warnings.
	RenderFile(ctx context.Context, file string, input []byte, vars Variables) ([]byte, []Warning, error)

	// Validate checks template syntax without evaluating.
	Validate(input []byte) error

	// ExtractVariables returns the sorted set of variable names referenced
	// by the template (emissions, conditions, and loop sequences).
	ExtractVariables(input []byte) ([]string, error)
}

// DefaultRenderer implements Renderer.
type DefaultRenderer struct {
	opts Options
}

// NewRenderer creates a renderer with default options.
func NewRenderer() *DefaultRenderer {
	return NewRendererWithOptions(Options{})
}

// NewRendererWithOptions creates a renderer with the given options.
func NewRendererWithOptions(opts Options) *DefaultRenderer {
	return &DefaultRenderer{opts: opts.withDefaults()}
}

// Render evaluates input against vars.
func (r *DefaultRenderer) Render(ctx context.Context, input []byte, vars Variables) ([]byte, []Warning, error) {
	return r.RenderFile(ctx, "", input, vars)
}

// RenderFile evaluates input against vars, attributing findings to file.
// Evaluation is single-pass and side-effect-free: vars is never mutated, so
// independent file renders may run in parallel from the caller's side.
func (r *DefaultRenderer) RenderFile(ctx context.Context, file string, input []byte, vars Variables) ([]byte, []Warning, error) {
	debug.Debug("[render] Rendering %q: %d bytes", file, len(input))

	nodes, perr := parse(string(input))
	if perr != nil {
		perr.File = file
		return nil, nil, perr
	}

	ev := &evaluator{file: file, opts: r.opts}
	root := &scope{vars: vars}
	if err := ev.evalNodes(ctx, nodes, root); err != nil {
		return nil, ev.warnings, err
	}

	debug.Debug("[render] Rendered %q: %d bytes out, %d warning(s)", file, ev.out.Len(), len(ev.warnings))
	return []byte(ev.out.String()), ev.warnings, nil
}

// Validate checks template syntax without evaluating.
func (r *DefaultRenderer) Validate(input []byte) error {
	if _, err := parse(string(input)); err != nil {
		return err
	}
	return nil
}

// ExtractVariables returns all variable names the template references.
// Loop variables bound by {% for %} are not reported.
func (r *DefaultRenderer) ExtractVariables(input []byte) ([]string, error) {
	nodes, perr := parse(string(input))
	if perr != nil {
		return nil, perr
	}

	names := make(map[string]struct{})
	var walk func(nodes []Node, bound map[string]bool)
	walk = func(nodes []Node, bound map[string]bool) {
		for _, node := range nodes {
			switch n := node.(type) {
			case *OutputNode:
				if !bound[n.Expr.Name] {
					names[n.Expr.Name] = struct{}{}
				}
			case *IfNode:
				for _, branch := range n.Branches {
					if !bound[branch.Cond.Name] {
						names[branch.Cond.Name] = struct{}{}
					}
					walk(branch.Body, bound)
				}
				walk(n.Else, bound)
			case *ForNode:
				if !bound[n.Seq] {
					names[n.Seq] = struct{}{}
				}
				inner := make(map[string]bool, len(bound)+1)
				for k := range bound {
					inner[k] = true
				}
				inner[n.Var] = true
				walk(n.Body, inner)
			}
		}
	}
	walk(nodes, map[string]bool{})

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sortStrings(result)
	return result, nil
}
