package token

import "fmt"

// Type identifies the lexical category of a token.
type Type int

const (
	// Special
	EOF Type = iota
	NEWLINE
	INDENT
	DEDENT

	// Literals and identifiers
	IDENT
	NUMBER
	STRING

	// Operators
	PLUS    // "+"
	MINUS   // "-"
	STAR    // "*"
	SLASH   // "/"
	PERCENT // "%"
	EQ      // "=="
	NEQ     // "!="
	LT      // "<"
	LTE     // "<="
	GT      // ">"
	GTE     // ">="
	AND     // "&&"
	OR      // "||"
	RANGE   // ".."
	RANGEEQ // "..."
	ASSIGN  // "="

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	LBRACE   // "{"
	RBRACE   // "}"
	COLON    // ":"
	COMMA    // ","

	// Keywords
	FUNC
	RETURN
	IF
	ELIF
	ELSE
	WHILE
	FOR
	IN
	BREAK
	CONTINUE
	MATCH
	WHEN
	NOT
	TRUE
	FALSE
	NONE
)

var names = map[Type]string{
	EOF:      "EOF",
	NEWLINE:  "NEWLINE",
	INDENT:   "INDENT",
	DEDENT:   "DEDENT",
	IDENT:    "identifier",
	NUMBER:   "number",
	STRING:   "string",
	PLUS:     "'+'",
	MINUS:    "'-'",
	STAR:     "'*'",
	SLASH:    "'/'",
	PERCENT:  "'%'",
	EQ:       "'=='",
	NEQ:      "'!='",
	LT:       "'<'",
	LTE:      "'<='",
	GT:       "'>'",
	GTE:      "'>='",
	AND:      "'&&'",
	OR:       "'||'",
	RANGE:    "'..'",
	RANGEEQ:  "'...'",
	ASSIGN:   "'='",
	LPAREN:   "'('",
	RPAREN:   "')'",
	LBRACKET: "'['",
	RBRACKET: "']'",
	LBRACE:   "'{'",
	RBRACE:   "'}'",
	COLON:    "':'",
	COMMA:    "','",
	FUNC:     "'func'",
	RETURN:   "'return'",
	IF:       "'if'",
	ELIF:     "'elif'",
	ELSE:     "'else'",
	WHILE:    "'while'",
	FOR:      "'for'",
	IN:       "'in'",
	BREAK:    "'break'",
	CONTINUE: "'continue'",
	MATCH:    "'match'",
	WHEN:     "'when'",
	NOT:      "'not'",
	TRUE:     "'true'",
	FALSE:    "'false'",
	NONE:     "'none'",
}

func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Position locates a token in source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a single lexical unit. Literal holds the raw text for
// identifiers and literals and the operator spelling otherwise; layout
// tokens (NEWLINE, INDENT, DEDENT, EOF) leave it empty.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}

var keywords = map[string]Type{
	"func":     FUNC,
	"return":   RETURN,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"match":    MATCH,
	"when":     WHEN,
	"not":      NOT,
	"true":     TRUE,
	"false":    FALSE,
	"none":     NONE,
}

// LookupIdent maps an identifier to its keyword type, or IDENT.
func LookupIdent(name string) Type {
	if t, ok := keywords[name]; ok {
		return t
	}
	return IDENT
}
