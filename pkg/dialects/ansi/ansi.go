// Package ansi provides the neutral ANSI SQL dialect.
//
// Every render hook is left at the shared default, so this dialect shows the
// core renderer's behavior unmodified. Other dialects are built from the
// same defaults and add only the hooks that differ.
package ansi

import (
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the neutral ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	ConcatOperator("||").
	Build()
