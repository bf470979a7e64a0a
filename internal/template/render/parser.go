package render

import (
	"regexp"
	"strings"
)

// identPattern matches valid variable and loop-variable names.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// blockKeywords are tag keywords that only make sense inside an open block.
var blockKeywords = map[string]bool{
	"elsif": true, "else": true, "endif": true, "endfor": true, "endraw": true,
}

// parser builds the template AST from the lexed token stream.
type parser struct {
	tokens []token
	pos    int
}

// parse lexes and parses template input into a node list.
func parse(input string) ([]Node, *Error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	nodes, term, perr := p.parseNodes(nil)
	if perr != nil {
		return nil, perr
	}
	if term != nil {
		return nil, unexpectedTag(term)
	}
	return nodes, nil
}

// parseNodes parses until EOF or until a tag whose keyword is in stop.
// Returns the terminating tag token (nil at EOF).
func (p *parser) parseNodes(stop map[string]bool) ([]Node, *token, *Error) {
	var nodes []Node

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.typ {
		case tokenText:
			nodes = append(nodes, &TextNode{Text: tok.val, Line: tok.line, Col: tok.col})

		case tokenOutput:
			expr, err := parseExpr(&tok)
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, &OutputNode{Expr: *expr, Line: tok.line, Col: tok.col})

		case tokenTag:
			keyword := tagKeyword(tok.val)
			if stop[keyword] {
				return nodes, &tok, nil
			}

			switch keyword {
			case "if":
				node, err := p.parseIf(&tok)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, node)
			case "for":
				node, err := p.parseFor(&tok)
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, node)
			default:
				if blockKeywords[keyword] {
					return nil, nil, unexpectedTag(&tok)
				}
				return nil, nil, newError(UnknownTag, tok.line, tok.col,
					"unknown tag %q: supported tags are if, elsif, else, endif, for, endfor, raw, endraw", keyword)
			}
		}
	}

	return nodes, nil, nil
}

// parseIf parses an if block starting at the already-consumed open tag.
func (p *parser) parseIf(open *token) (*IfNode, *Error) {
	cond, err := parseCond(tagArgs(open.val), open)
	if err != nil {
		return nil, err
	}

	node := &IfNode{Line: open.line, Col: open.col}
	node.Branches = append(node.Branches, Branch{Cond: *cond})

	for {
		body, term, err := p.parseNodes(map[string]bool{"elsif": true, "else": true, "endif": true})
		if err != nil {
			return nil, err
		}
		if term == nil {
			return nil, newError(UnclosedBlock, open.line, open.col,
				"{%% if %%} has no matching {%% endif %%}")
		}
		node.Branches[len(node.Branches)-1].Body = body

		switch tagKeyword(term.val) {
		case "elsif":
			cond, err := parseCond(tagArgs(term.val), term)
			if err != nil {
				return nil, err
			}
			node.Branches = append(node.Branches, Branch{Cond: *cond})

		case "else":
			if tagArgs(term.val) != "" {
				return nil, newError(InvalidExpression, term.line, term.col,
					"{%% else %%} takes no condition")
			}
			elseBody, elseTerm, err := p.parseNodes(map[string]bool{"endif": true})
			if err != nil {
				return nil, err
			}
			if elseTerm == nil {
				return nil, newError(UnclosedBlock, open.line, open.col,
					"{%% if %%} has no matching {%% endif %%}")
			}
			node.Else = elseBody
			return node, nil

		case "endif":
			return node, nil
		}
	}
}

// parseFor parses a for block starting at the already-consumed open tag.
func (p *parser) parseFor(open *token) (*ForNode, *Error) {
	fields := strings.Fields(tagArgs(open.val))
	if len(fields) != 3 || fields[1] != "in" {
		return nil, newError(InvalidExpression, open.line, open.col,
			"for tag must have the form {%% for x in seq %%}")
	}
	if !identPattern.MatchString(fields[0]) {
		return nil, newError(InvalidExpression, open.line, open.col,
			"invalid loop variable name %q", fields[0])
	}
	if !identPattern.MatchString(fields[2]) {
		return nil, newError(InvalidExpression, open.line, open.col,
			"invalid sequence variable name %q", fields[2])
	}

	body, term, err := p.parseNodes(map[string]bool{"endfor": true})
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, newError(UnclosedBlock, open.line, open.col,
			"{%% for %%} has no matching {%% endfor %%}")
	}

	return &ForNode{
		Var:  fields[0],
		Seq:  fields[2],
		Body: body,
		Line: open.line,
		Col:  open.col,
	}, nil
}

// parseCond parses the condition of an if/elsif tag: a variable name with
// an optional `not` prefix. Comparisons and boolean operators do not exist
// in this grammar.
func parseCond(args string, tok *token) (*Cond, *Error) {
	fields := strings.Fields(args)

	cond := &Cond{Line: tok.line, Col: tok.col}
	switch len(fields) {
	case 1:
		cond.Name = fields[0]
	case 2:
		if fields[0] != "not" {
			return nil, newError(InvalidExpression, tok.line, tok.col,
				"condition must be a variable name, optionally prefixed with \"not\"")
		}
		cond.Negate = true
		cond.Name = fields[1]
	default:
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"condition must be a variable name, optionally prefixed with \"not\"")
	}

	if !identPattern.MatchString(cond.Name) {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"invalid condition variable name %q", cond.Name)
	}
	return cond, nil
}

// parseExpr parses the inside of {{ }}: a variable name followed by an
// optional pipe-separated filter chain. Filter names and arguments are
// checked here so evaluation can never fail on a filter.
func parseExpr(tok *token) (*Expr, *Error) {
	segments := strings.Split(tok.val, "|")

	name := strings.TrimSpace(segments[0])
	if name == "" {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"empty expression: expected a variable name")
	}
	if !identPattern.MatchString(name) {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"invalid variable name %q", name)
	}

	expr := &Expr{Name: name}
	for _, segment := range segments[1:] {
		call, err := parseFilterCall(segment, tok)
		if err != nil {
			return nil, err
		}
		expr.Filters = append(expr.Filters, *call)
	}
	return expr, nil
}

// parseFilterCall parses a single `name` or `name: arg` filter segment.
func parseFilterCall(segment string, tok *token) (*FilterCall, *Error) {
	call := &FilterCall{}

	name, arg, hasArg := strings.Cut(segment, ":")
	call.Name = strings.TrimSpace(name)
	if call.Name == "" {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"empty filter name in expression %q", tok.val)
	}

	spec, ok := filterRegistry[call.Name]
	if !ok {
		return nil, newError(UnknownFilter, tok.line, tok.col,
			"unknown filter %q: available filters are %s",
			call.Name, strings.Join(FilterNames(), ", "))
	}

	if hasArg {
		call.Arg = unquote(strings.TrimSpace(arg))
		call.HasArg = true
	}

	if spec.needsArg && !call.HasArg {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"filter %q requires an argument (use %s: value)", call.Name, call.Name)
	}
	if !spec.needsArg && call.HasArg {
		return nil, newError(InvalidExpression, tok.line, tok.col,
			"filter %q takes no argument", call.Name)
	}
	if spec.checkArg != nil && call.HasArg {
		if err := spec.checkArg(call.Arg); err != nil {
			return nil, newError(InvalidExpression, tok.line, tok.col, "%v", err)
		}
	}

	return call, nil
}

// tagKeyword returns the first word of a tag's content.
func tagKeyword(val string) string {
	keyword, _, _ := strings.Cut(val, " ")
	return keyword
}

// tagArgs returns everything after the tag keyword, trimmed.
func tagArgs(val string) string {
	_, args, _ := strings.Cut(val, " ")
	return strings.TrimSpace(args)
}

// unquote strips one matching pair of single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// unexpectedTag builds the error for a branch/closing tag outside its block.
func unexpectedTag(tok *token) *Error {
	return newError(UnexpectedTag, tok.line, tok.col,
		"unexpected tag {%% %s %%} outside its block", tagKeyword(tok.val))
}
