// Package translate maps C++ member names to the names the JlCxx bindings
// register them under.
package translate

// bindingNames maps C++ spellings to their Julia binding names. Mutating
// operators take Julia's bang suffix; comparison operators become the
// is_* predicates JlCxx conventionally uses.
var bindingNames = map[string]string{
	"operator==":             "is_equal",
	"operator!=":             "is_not_equal",
	"operator<":              "is_less",
	"operator>":              "is_greater",
	"operator<=":             "is_less_equal",
	"operator>=":             "is_greater_equal",
	"operator+":              "add",
	"operator*":              "multiply",
	"operator*=":             "multiply!",
	"operator+=":             "add!",
	"operator()":             "__call__",
	"operator[]":             "getindex",
	"at":                     "at",
	"hash_value":             "hash",
	"to_human_readable_repr": "to_string",
	"product_inplace":        "product_inplace!",
	"increase_degree_by":     "increase_degree_by!",
}

// ToJulia returns the Julia binding name for a C++ member name, or the name
// itself when no translation applies.
func ToJulia(name string) string {
	if jl, ok := bindingNames[name]; ok {
		return jl
	}
	return name
}
