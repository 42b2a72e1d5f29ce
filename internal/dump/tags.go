package dump

import (
	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/token"
)

// unaryTagNames and binaryTagNames name the dump tag for each overloaded
// operator token, keyed by the arity the parser resolved it to (spec §9:
// "the parser distinguishes them by whether an expression has already
// been produced at the current recursion level").
var unaryTagNames = map[token.Type]string{
	token.MINUS:     "negation",
	token.BANG:      "logical-not",
	token.TILDE:     "bitwise-not",
	token.AT:        "address",
	token.BACKSLASH: "indirection",
	token.CARET:     "jump",
	token.APOSTROPHE: "inference",
	token.DOT:       "designation",
	token.LPAREN:    "subexpression",
	token.LBRACKET:  "enumeration",
}

var binaryTagNames = map[token.Type]string{
	token.PLUS:            "addition",
	token.MINUS:           "subtraction",
	token.STAR:            "multiplication",
	token.SLASH:           "division",
	token.PERCENT:         "modulo",
	token.LSHIFT:          "shift-left",
	token.RSHIFT:          "shift-right",
	token.GT:              "greater-than",
	token.LT:              "less-than",
	token.GT_EQUALS:       "greater-equal",
	token.LT_EQUALS:       "less-equal",
	token.EQUALS_EQUALS:   "equal",
	token.BANG_EQUALS:     "not-equal",
	token.AMPERSAND:       "bitwise-and",
	token.CARET:           "bitwise-xor",
	token.PIPE:            "bitwise-or",
	token.AMP_AMP:         "logical-and",
	token.PIPE_PIPE:       "logical-or",
	token.DOT:             "resolution",
	token.ARROW:           "returns",
	token.DOT_DOT:         "range",
	token.COMMA:           "list",
	token.COLON:           "field",
	token.EQUALS:          "assign",
	token.PLUS_EQUALS:     "assign-add",
	token.MINUS_EQUALS:    "assign-subtract",
	token.STAR_EQUALS:     "assign-multiply",
	token.SLASH_EQUALS:    "assign-divide",
	token.PERCENT_EQUALS:  "assign-modulo",
	token.AMP_EQUALS:      "assign-and",
	token.CARET_EQUALS:    "assign-xor",
	token.PIPE_EQUALS:     "assign-or",
	token.LSHIFT_EQUALS:   "assign-shift-left",
	token.RSHIFT_EQUALS:   "assign-shift-right",
	ast.OpInvoke:          "invocation",
}
