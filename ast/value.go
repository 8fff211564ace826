package ast

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

func (UndefinedType) String() string { return "undefined" }

// Undefined is the runtime value for an absent value. It is distinct from nil,
// which stands for null.
var Undefined = UndefinedType{}

// Symbol is an interned identifier. Two symbols are the same symbol when their
// keys are equal.
type Symbol struct {
	Key string
}

// SymbolFor returns the symbol identified by key.
func SymbolFor(key string) Symbol { return Symbol{Key: key} }

func (s Symbol) String() string { return "Symbol(" + s.Key + ")" }

// PropertyKey names a record member: either a string key or a symbol key.
// The zero value is the empty string key.
type PropertyKey struct {
	name     string
	sym      Symbol
	isSymbol bool
}

// StringKey returns a string property key.
func StringKey(name string) PropertyKey { return PropertyKey{name: name} }

// SymbolKey returns a symbol property key.
func SymbolKey(s Symbol) PropertyKey { return PropertyKey{sym: s, isSymbol: true} }

// IsSymbol reports whether k is a symbol key.
func (k PropertyKey) IsSymbol() bool { return k.isSymbol }

// Name returns the string key. It is empty for symbol keys.
func (k PropertyKey) Name() string { return k.name }

// Symbol returns the symbol of a symbol key.
func (k PropertyKey) Symbol() (Symbol, bool) { return k.sym, k.isSymbol }

// Value returns the key as a runtime value: a string or a Symbol.
func (k PropertyKey) Value() any {
	if k.isSymbol {
		return k.sym
	}
	return k.name
}

func (k PropertyKey) String() string {
	if k.isSymbol {
		return k.sym.String()
	}
	return k.name
}

// Less orders keys: string keys first, each group by key.
func (k PropertyKey) Less(o PropertyKey) bool {
	if k.isSymbol != o.isSymbol {
		return !k.isSymbol
	}
	if k.isSymbol {
		return k.sym.Key < o.sym.Key
	}
	return k.name < o.name
}

// KeyOfValue converts a runtime record key (string or Symbol) into a
// PropertyKey.
func KeyOfValue(v any) (PropertyKey, bool) {
	switch k := v.(type) {
	case string:
		return StringKey(k), true
	case Symbol:
		return SymbolKey(k), true
	case PropertyKey:
		return k, true
	}
	return PropertyKey{}, false
}
