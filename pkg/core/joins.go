package core

// JoinKind identifies how a joined source is combined with the sources before it.
type JoinKind int

// JoinKind values.
const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinCross
	// JoinCrossApply is a correlated join: the right side may reference the left.
	JoinCrossApply
	// JoinOuterApply is the outer variant of JoinCrossApply.
	JoinOuterApply
)

var joinKindNames = map[JoinKind]string{
	JoinInner:      "inner",
	JoinLeft:       "left",
	JoinCross:      "cross",
	JoinCrossApply: "cross_apply",
	JoinOuterApply: "outer_apply",
}

// String returns the lowercase join kind name.
func (k JoinKind) String() string {
	if s, ok := joinKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseJoinKind returns the kind for a name produced by JoinKind.String.
func ParseJoinKind(s string) (JoinKind, bool) {
	for k, name := range joinKindNames {
		if name == s {
			return k, true
		}
	}
	return JoinInner, false
}

// RequiresOn reports whether the join kind carries an ON predicate.
func (k JoinKind) RequiresOn() bool {
	return k == JoinInner || k == JoinLeft
}

// Join is one entry of a select's join list.
type Join struct {
	Kind  JoinKind
	Table TableSource
	On    Expr
}
