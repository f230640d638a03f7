package domain

// ConditionKind selects the storage operator a field condition compiles
// to. The set is closed: the transformer tags every condition at build
// time and the store adapter switches on the tag, so no string-keyed
// dispatch leaks past the catalog.
type ConditionKind int

const (
	// CondLiteral passes the word list through unchanged.
	CondLiteral ConditionKind = iota
	// CondContainsAny matches when the stored array shares at least
	// one element with Words.
	CondContainsAny
	// CondPattern is a case-insensitive substring/regex match on Expr.
	CondPattern
	// CondOneOf matches when the stored value equals one of Words.
	CondOneOf
	// CondRange is an inclusive numeric range [Min, Max].
	CondRange
)

func (k ConditionKind) String() string {
	switch k {
	case CondLiteral:
		return "literal"
	case CondContainsAny:
		return "contains_any"
	case CondPattern:
		return "pattern"
	case CondOneOf:
		return "one_of"
	case CondRange:
		return "range"
	default:
		return "unknown"
	}
}

// Condition is one storage-ready query fragment for a single field.
type Condition struct {
	Kind  ConditionKind
	Words []string
	Expr  string
	Min   int
	Max   int
}

// Filter maps field names to their conditions; it is the read-side
// query fragment handed to the store.
type Filter map[string]Condition

func Literal(words []string) Condition     { return Condition{Kind: CondLiteral, Words: words} }
func ContainsAny(words []string) Condition { return Condition{Kind: CondContainsAny, Words: words} }
func Pattern(expr string) Condition        { return Condition{Kind: CondPattern, Expr: expr} }
func OneOf(words []string) Condition       { return Condition{Kind: CondOneOf, Words: words} }
func Range(min, max int) Condition         { return Condition{Kind: CondRange, Min: min, Max: max} }
