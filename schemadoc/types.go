package schemadoc

// Document is the top-level shape of a schema document.
type Document struct {
	Definitions map[string]*Node `yaml:"definitions" json:"definitions"`
	Root        *Node            `yaml:"root" json:"root"`
}

// Node describes one schema node. Which fields apply depends on Type.
type Node struct {
	Type        string `yaml:"type" json:"type"`
	Ref         string `yaml:"ref" json:"ref"`
	Identifier  string `yaml:"identifier" json:"identifier"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Examples    []any  `yaml:"examples" json:"examples"`

	// literal
	Values []any `yaml:"values" json:"values"`
	// enums
	Enum []EnumMember `yaml:"enum" json:"enum"`
	// template
	Parts []*Node `yaml:"parts" json:"parts"`
	// tuple
	Elements         []*Node `yaml:"elements" json:"elements"`
	OptionalElements []*Node `yaml:"optionalElements" json:"optionalElements"`
	Rest             *Node   `yaml:"rest" json:"rest"`
	Post             []*Node `yaml:"post" json:"post"`
	// array
	Items *Node `yaml:"items" json:"items"`
	// struct
	Fields map[string]*Node `yaml:"fields" json:"fields"`
	Index  []IndexEntry     `yaml:"index" json:"index"`
	// as a struct field
	Optional bool `yaml:"optional" json:"optional"`
	Readonly bool `yaml:"readonly" json:"readonly"`
	// record
	Key   *Node `yaml:"key" json:"key"`
	Value *Node `yaml:"value" json:"value"`
	// union
	Members []*Node `yaml:"members" json:"members"`
	// keyof, partial, pick, omit, extend
	Of   *Node    `yaml:"of" json:"of"`
	With *Node    `yaml:"with" json:"with"`
	Keys []string `yaml:"keys" json:"keys"`

	// Codec wraps the node in a transform: rfc3339, uuid, numberFromString
	// or jsonFromString.
	Codec string `yaml:"codec" json:"codec"`

	// filters
	MinLength *int     `yaml:"minLength" json:"minLength"`
	MaxLength *int     `yaml:"maxLength" json:"maxLength"`
	Pattern   string   `yaml:"pattern" json:"pattern"`
	Minimum   *float64 `yaml:"minimum" json:"minimum"`
	Maximum   *float64 `yaml:"maximum" json:"maximum"`
	MinItems  *int     `yaml:"minItems" json:"minItems"`
	MaxItems  *int     `yaml:"maxItems" json:"maxItems"`
	Int       bool     `yaml:"int" json:"int"`
	Finite    bool     `yaml:"finite" json:"finite"`
	NonNaN    bool     `yaml:"nonNaN" json:"nonNaN"`
	Refine    []Refine `yaml:"refine" json:"refine"`
}

type EnumMember struct {
	Name  string `yaml:"name" json:"name"`
	Value any    `yaml:"value" json:"value"`
}

type IndexEntry struct {
	Key   *Node `yaml:"key" json:"key"`
	Value *Node `yaml:"value" json:"value"`
}

// Refine is a boolean expr expression evaluated with the decoded value bound
// to `value`.
type Refine struct {
	Expr  string `yaml:"expr" json:"expr"`
	Label string `yaml:"label" json:"label"`
}
