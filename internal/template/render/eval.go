package render

import (
	"context"
	"strings"

	"github.com/skaffio/skaff/internal/debug"
)

// scope is a variable lookup chain: loop variables shadow outer bindings in a
// child scope so evaluation never mutates the shared Variables.
type scope struct {
	parent *scope
	vars   Variables
	name   string
	value  Value
}

// lookup resolves a name through the scope chain, innermost first.
func (s *scope) lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
		if cur.parent == nil {
			return cur.vars.Get(name)
		}
	}
	return Value{}, false
}

// child creates a nested scope binding name to value.
func (s *scope) child(name string, value Value) *scope {
	return &scope{parent: s, name: name, value: value}
}

// evaluator walks the AST and produces output under resource limits.
type evaluator struct {
	file       string
	opts       Options
	out        strings.Builder
	warnings   []Warning
	iterations int
}

// evalNodes evaluates a node list into the output buffer.
func (e *evaluator) evalNodes(ctx context.Context, nodes []Node, sc *scope) *Error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			if err := e.write(n.Text, n.Line, n.Col); err != nil {
				return err
			}

		case *OutputNode:
			if err := e.evalOutput(n, sc); err != nil {
				return err
			}

		case *IfNode:
			if err := e.evalIf(ctx, n, sc); err != nil {
				return err
			}

		case *ForNode:
			if err := e.evalFor(ctx, n, sc); err != nil {
				return err
			}
		}
	}
	return nil
}

// evalOutput evaluates a {{ expr }} emission.
func (e *evaluator) evalOutput(n *OutputNode, sc *scope) *Error {
	value, ok := sc.lookup(n.Expr.Name)
	if !ok {
		if err := e.undefined(n.Expr.Name, n.Line, n.Col); err != nil {
			return err
		}
		value = StringValue("")
	}

	text := value.Str()
	for _, call := range n.Expr.Filters {
		text = filterRegistry[call.Name].apply(text, call.Arg)
	}

	return e.write(text, n.Line, n.Col)
}

// evalIf evaluates the first branch whose condition holds, or the else body.
func (e *evaluator) evalIf(ctx context.Context, n *IfNode, sc *scope) *Error {
	for _, branch := range n.Branches {
		truthy, err := e.evalCond(&branch.Cond, sc)
		if err != nil {
			return err
		}
		if truthy {
			return e.evalNodes(ctx, branch.Body, sc)
		}
	}
	return e.evalNodes(ctx, n.Else, sc)
}

// evalCond resolves a condition variable and applies negation.
// An undefined condition variable is falsy and reported as a warning.
func (e *evaluator) evalCond(cond *Cond, sc *scope) (bool, *Error) {
	value, ok := sc.lookup(cond.Name)
	if !ok {
		if err := e.undefined(cond.Name, cond.Line, cond.Col); err != nil {
			return false, err
		}
		return cond.Negate, nil
	}
	if cond.Negate {
		return !value.Truthy(), nil
	}
	return value.Truthy(), nil
}

// evalFor evaluates a loop over a list variable. An undefined sequence is an
// empty loop (with a warning); a non-list sequence is a fatal error.
func (e *evaluator) evalFor(ctx context.Context, n *ForNode, sc *scope) *Error {
	value, ok := sc.lookup(n.Seq)
	if !ok {
		return e.undefined(n.Seq, n.Line, n.Col)
	}

	items, ok := value.List()
	if !ok {
		return e.position(newError(NotIterable, n.Line, n.Col,
			"cannot loop over %q: variable is a %s, not a list", n.Seq, value.Kind()))
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return e.position(newError(LimitExceeded, n.Line, n.Col,
				"rendering cancelled: %v", err))
		}

		e.iterations++
		if e.iterations > e.opts.MaxIterations {
			return e.position(newError(LimitExceeded, n.Line, n.Col,
				"loop iteration budget of %d exceeded", e.opts.MaxIterations))
		}

		if err := e.evalNodes(ctx, n.Body, sc.child(n.Var, StringValue(item))); err != nil {
			return err
		}
	}
	return nil
}

// undefined records an undefined-variable reference. It is a warning by
// default and a fatal error in strict variable mode.
func (e *evaluator) undefined(name string, line, col int) *Error {
	if e.opts.StrictVars {
		return e.position(newError(UndefinedVariable, line, col,
			"undefined variable %q: declare it in [parameters] or supply it with --param", name))
	}
	debug.Debug("[render] Undefined variable %q at %s:%d:%d", name, e.file, line, col)
	e.warnings = append(e.warnings, Warning{File: e.file, Line: line, Col: col, Name: name})
	return nil
}

// write appends text to the output, enforcing the output size budget.
func (e *evaluator) write(text string, line, col int) *Error {
	if e.out.Len()+len(text) > e.opts.MaxOutputBytes {
		return e.position(newError(LimitExceeded, line, col,
			"rendered output exceeds the %d byte budget", e.opts.MaxOutputBytes))
	}
	e.out.WriteString(text)
	return nil
}

// position stamps the evaluator's file onto an error.
func (e *evaluator) position(err *Error) *Error {
	err.File = e.file
	return err
}
