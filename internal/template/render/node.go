package render

// Node is a parsed template fragment.
type Node interface {
	node()
}

// TextNode is literal text emitted verbatim.
type TextNode struct {
	Text string
	Line int
	Col  int
}

// OutputNode is a {{ expr }} emission.
type OutputNode struct {
	Expr Expr
	Line int
	Col  int
}

// Expr is a variable reference with an optional left-to-right filter chain.
// The grammar deliberately stops here: no function calls, no arithmetic,
// no literals, so a template can only read the variable scope.
type Expr struct {
	// Name is the referenced variable name.
	Name string
	// Filters are applied left to right to the variable's string form.
	Filters []FilterCall
}

// FilterCall is a single `| name` or `| name: arg` application.
type FilterCall struct {
	Name   string
	Arg    string
	HasArg bool
}

// Cond is a condition in an {% if %} or {% elsif %} tag: a bare variable
// reference, optionally negated with `not`.
type Cond struct {
	Name   string
	Negate bool
	Line   int
	Col    int
}

// Branch is one conditional arm with its body.
type Branch struct {
	Cond Cond
	Body []Node
}

// IfNode is an {% if %} ... {% elsif %} ... {% else %} ... {% endif %} block.
type IfNode struct {
	Branches []Branch
	Else     []Node
	Line     int
	Col      int
}

// ForNode is a {% for x in seq %} ... {% endfor %} loop over a list variable.
type ForNode struct {
	Var  string
	Seq  string
	Body []Node
	Line int
	Col  int
}

func (*TextNode) node()   {}
func (*OutputNode) node() {}
func (*IfNode) node()     {}
func (*ForNode) node()    {}
