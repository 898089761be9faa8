package core

// TypeKind classifies a store type independently of its nullability.
type TypeKind int

// TypeKind values.
const (
	KindUnknown TypeKind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindBinary
	KindDateTime
	KindDate
	KindTime
	KindUUID
	// KindRowVersion is a server-maintained concurrency token (e.g. rowversion).
	KindRowVersion
)

var kindNames = map[TypeKind]string{
	KindUnknown:    "unknown",
	KindBool:       "bool",
	KindInt:        "int",
	KindFloat:      "float",
	KindDecimal:    "decimal",
	KindString:     "string",
	KindBinary:     "binary",
	KindDateTime:   "datetime",
	KindDate:       "date",
	KindTime:       "time",
	KindUUID:       "uuid",
	KindRowVersion: "rowversion",
}

// String returns the lowercase kind name.
func (k TypeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseTypeKind returns the kind for a name produced by TypeKind.String.
func ParseTypeKind(s string) (TypeKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// TypeMapping is the declared store type of an expression or column.
type TypeMapping struct {
	StoreType string // e.g. "int", "nvarchar(max)", "NUMBER(10,2)"
	Kind      TypeKind
	Nullable  bool
	Precision int
	Scale     int
	Size      int
}

// IsBool reports whether the unwrapped type is boolean.
func (t *TypeMapping) IsBool() bool {
	return t != nil && t.Kind == KindBool
}

// IsString reports whether the type holds character data.
func (t *TypeMapping) IsString() bool {
	return t != nil && t.Kind == KindString
}

// IsDecimal reports whether the type is a fixed-precision decimal.
func (t *TypeMapping) IsDecimal() bool {
	return t != nil && t.Kind == KindDecimal
}

// TypeOf returns the declared type of an expression, or nil when unknown.
func TypeOf(e Expr) *TypeMapping {
	switch n := e.(type) {
	case *ColumnRef:
		return n.Type
	case *Literal:
		return n.Type
	case *Parameter:
		return n.Type
	case *BinaryExpr:
		return n.Type
	case *UnaryExpr:
		return n.Type
	case *FuncCall:
		return n.Type
	case *CastExpr:
		return n.Type
	case *CaseExpr:
		return n.Type
	case *SubqueryExpr:
		return n.Type
	}
	return nil
}
