// Package token defines the operator and keyword tokens used when rendering SQL.
//
// Binary and unary operators in the logical plan are identified by a TokenType;
// dialects map them to their own spelling (or lower them to function calls).
package token

import (
	"fmt"
	"strings"
)

// TokenType identifies an operator or keyword.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // token names are intentionally ALL_CAPS for SQL token conventions
const (
	ILLEGAL TokenType = iota

	// Arithmetic and string operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	DPIPE   // ||

	// Bitwise operators
	AMPERSAND // &
	PIPE      // |
	CARET     // ^

	// Comparison operators
	EQ // =
	NE // <>
	LT // <
	GT // >
	LE // <=
	GE // >=

	// Null coalescing (a ?? b), rendered as COALESCE by default
	COALESCE

	// Keywords (alphabetical)
	ALL
	AND
	APPLY
	AS
	ASC
	BY
	CASE
	CAST
	CROSS
	DEFAULT
	DELETE
	DESC
	DISTINCT
	ELSE
	END
	ESCAPE
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FIRST
	FROM
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LATERAL
	LEFT
	LIKE
	LIMIT
	NEXT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OUTER
	RETURNING
	ROWS
	SELECT
	SET
	THEN
	TOP
	TRUE
	UNION
	UPDATE
	VALUES
	WHEN
	WHERE
)

// String returns the SQL spelling of the token.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsComparison reports whether t is a comparison operator.
func (t TokenType) IsComparison() bool {
	return t >= EQ && t <= GE
}

// IsBitwise reports whether t is a bitwise operator.
func (t TokenType) IsBitwise() bool {
	return t == AMPERSAND || t == PIPE || t == CARET
}

// IsLogical reports whether t combines boolean predicates.
func (t TokenType) IsLogical() bool {
	return t == AND || t == OR
}

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	AMPERSAND: "&",
	PIPE:      "|",
	CARET:     "^",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	COALESCE:  "??",

	ALL:       "ALL",
	AND:       "AND",
	APPLY:     "APPLY",
	AS:        "AS",
	ASC:       "ASC",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	CROSS:     "CROSS",
	DEFAULT:   "DEFAULT",
	DELETE:    "DELETE",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	ELSE:      "ELSE",
	END:       "END",
	ESCAPE:    "ESCAPE",
	EXCEPT:    "EXCEPT",
	EXISTS:    "EXISTS",
	FALSE:     "FALSE",
	FETCH:     "FETCH",
	FIRST:     "FIRST",
	FROM:      "FROM",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IN:        "IN",
	INNER:     "INNER",
	INSERT:    "INSERT",
	INTERSECT: "INTERSECT",
	INTO:      "INTO",
	IS:        "IS",
	JOIN:      "JOIN",
	LATERAL:   "LATERAL",
	LEFT:      "LEFT",
	LIKE:      "LIKE",
	LIMIT:     "LIMIT",
	NEXT:      "NEXT",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OFFSET:    "OFFSET",
	ON:        "ON",
	ONLY:      "ONLY",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	RETURNING: "RETURNING",
	ROWS:      "ROWS",
	SELECT:    "SELECT",
	SET:       "SET",
	THEN:      "THEN",
	TOP:       "TOP",
	TRUE:      "TRUE",
	UNION:     "UNION",
	UPDATE:    "UPDATE",
	VALUES:    "VALUES",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
}

// operatorsByName maps the textual operator spelling used in plan files to tokens.
var operatorsByName = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   STAR,
	"/":   SLASH,
	"%":   PERCENT,
	"||":  DPIPE,
	"&":   AMPERSAND,
	"|":   PIPE,
	"^":   CARET,
	"=":   EQ,
	"<>":  NE,
	"!=":  NE,
	"<":   LT,
	">":   GT,
	"<=":  LE,
	">=":  GE,
	"??":  COALESCE,
	"and": AND,
	"or":  OR,
	"not": NOT,
}

// LookupOperator returns the token for an operator spelling such as "+" or "and".
// Keyword operators are matched case-insensitively.
func LookupOperator(s string) (TokenType, bool) {
	if t, ok := operatorsByName[s]; ok {
		return t, true
	}
	t, ok := operatorsByName[strings.ToLower(s)]
	return t, ok
}
