package render

import (
	"strings"
	"unicode/utf8"
)

// tokenType identifies a lexer token.
type tokenType int

const (
	// tokenText is literal template text emitted verbatim.
	tokenText tokenType = iota
	// tokenOutput is a {{ expr }} emission; val holds the trimmed inner expression.
	tokenOutput
	// tokenTag is a {% ... %} tag; val holds the trimmed inner content.
	tokenTag
)

// token is a lexed template fragment with its source position.
type token struct {
	typ  tokenType
	val  string
	line int
	col  int
}

// Delimiters of the templating grammar.
const (
	openOutput  = "{{"
	closeOutput = "}}"
	openTag     = "{%"
	closeTag    = "%}"
)

// lexer splits template text into text, output, and tag tokens while
// tracking line/column positions. {% raw %} bodies are consumed here and
// emitted as plain text so their contents never reach the parser.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// lex tokenizes input. Returns an Error for unterminated delimiters or a
// {% raw %} without a matching {% endraw %}.
func lex(input string) ([]token, *Error) {
	lx := &lexer{input: input, line: 1, col: 1}
	var tokens []token

	for lx.pos < len(lx.input) {
		openIdx, isTag := lx.nextDelimiter()
		if openIdx < 0 {
			tokens = append(tokens, token{typ: tokenText, val: lx.input[lx.pos:], line: lx.line, col: lx.col})
			break
		}

		if openIdx > lx.pos {
			tokens = append(tokens, token{typ: tokenText, val: lx.input[lx.pos:openIdx], line: lx.line, col: lx.col})
			lx.advanceTo(openIdx)
		}

		openLine, openCol := lx.line, lx.col
		open, closing := openOutput, closeOutput
		typ := tokenOutput
		if isTag {
			open, closing = openTag, closeTag
			typ = tokenTag
		}

		closeIdx := strings.Index(lx.input[lx.pos+len(open):], closing)
		if closeIdx < 0 {
			return nil, newError(UnclosedBlock, openLine, openCol,
				"unterminated %q: expected closing %q", open, closing)
		}
		closeIdx += lx.pos + len(open)

		inner := strings.TrimSpace(lx.input[lx.pos+len(open) : closeIdx])
		lx.advanceTo(closeIdx + len(closing))

		if typ == tokenTag && inner == "raw" {
			text, err := lx.consumeRaw(openLine, openCol)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, text)
			continue
		}

		tokens = append(tokens, token{typ: typ, val: inner, line: openLine, col: openCol})
	}

	return tokens, nil
}

// nextDelimiter finds the next {{ or {%, whichever comes first.
// Returns the byte offset and whether it is a tag delimiter, or (-1, false).
func (lx *lexer) nextDelimiter() (int, bool) {
	outIdx := strings.Index(lx.input[lx.pos:], openOutput)
	tagIdx := strings.Index(lx.input[lx.pos:], openTag)

	switch {
	case outIdx < 0 && tagIdx < 0:
		return -1, false
	case outIdx < 0:
		return lx.pos + tagIdx, true
	case tagIdx < 0:
		return lx.pos + outIdx, false
	case tagIdx < outIdx:
		return lx.pos + tagIdx, true
	default:
		return lx.pos + outIdx, false
	}
}

// consumeRaw scans from the current position to the matching {% endraw %}
// and returns the body as a verbatim text token. rawLine/rawCol locate the
// opening {% raw %} for error reporting.
func (lx *lexer) consumeRaw(rawLine, rawCol int) (token, *Error) {
	bodyStart := lx.pos
	bodyLine, bodyCol := lx.line, lx.col
	search := lx.pos

	for {
		tagIdx := strings.Index(lx.input[search:], openTag)
		if tagIdx < 0 {
			return token{}, newError(UnclosedBlock, rawLine, rawCol,
				"{%% raw %%} has no matching {%% endraw %%}")
		}
		tagIdx += search

		closeIdx := strings.Index(lx.input[tagIdx+len(openTag):], closeTag)
		if closeIdx < 0 {
			return token{}, newError(UnclosedBlock, rawLine, rawCol,
				"{%% raw %%} has no matching {%% endraw %%}")
		}
		closeIdx += tagIdx + len(openTag)

		inner := strings.TrimSpace(lx.input[tagIdx+len(openTag) : closeIdx])
		if inner == "endraw" {
			body := lx.input[bodyStart:tagIdx]
			lx.advanceTo(closeIdx + len(closeTag))
			return token{typ: tokenText, val: body, line: bodyLine, col: bodyCol}, nil
		}

		search = closeIdx + len(closeTag)
	}
}

// advanceTo moves the lexer to byte offset target, updating line/col.
// Columns count runes, not bytes, so positions stay accurate in text with
// multibyte characters. Delimiters are ASCII, so target never lands inside
// a rune.
func (lx *lexer) advanceTo(target int) {
	for lx.pos < target {
		r, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
		if r == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos += size
	}
}
