package decl

import "strings"

// Kind is the structural category a declaration sorts under.
type Kind int

const (
	KindUnknown Kind = iota
	KindField
	KindConstructor
	KindFinalizer
	KindDelegate
	KindEvent
	KindEnum
	KindInterface
	KindProperty
	KindIndexer
	KindMethod
	KindStruct
	KindClass
	KindNamespace
	KindOperator
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindField:       "field",
	KindConstructor: "constructor",
	KindFinalizer:   "finalizer",
	KindDelegate:    "delegate",
	KindEvent:       "event",
	KindEnum:        "enum",
	KindInterface:   "interface",
	KindProperty:    "property",
	KindIndexer:     "indexer",
	KindMethod:      "method",
	KindStruct:      "struct",
	KindClass:       "class",
	KindNamespace:   "namespace",
	KindOperator:    "operator",
}

// policyNames are the names used for kinds in a policy's KindOrder.
var policyNames = [...]string{
	KindUnknown:     "",
	KindField:       "Fields",
	KindConstructor: "Constructors",
	KindFinalizer:   "Finalizers",
	KindDelegate:    "Delegates",
	KindEvent:       "Events",
	KindEnum:        "Enums",
	KindInterface:   "Interfaces",
	KindProperty:    "Properties",
	KindIndexer:     "Indexers",
	KindMethod:      "Methods",
	KindStruct:      "Structs",
	KindClass:       "Classes",
	KindNamespace:   "Namespaces",
	KindOperator:    "Operators",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// MarshalText encodes k by its lowercase name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText. Unrecognized names decode as
// KindUnknown.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// ParseKind returns the kind with the given lowercase or policy name.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := range kindNames {
		if kindNames[k] == name || strings.ToLower(policyNames[k]) == name {
			return Kind(k)
		}
	}
	return KindUnknown
}

// PolicyName returns the name the kind is listed under in a policy. KindUnknown has no
// policy name, so it can never be listed.
func (k Kind) PolicyName() string {
	if k < 0 || int(k) >= len(policyNames) {
		return ""
	}
	return policyNames[k]
}

// KindOf maps a syntactic shape to its kind.
func KindOf(s Syntax) Kind {
	switch s {
	case SyntaxField:
		return KindField
	case SyntaxConstructor:
		return KindConstructor
	case SyntaxDestructor:
		return KindFinalizer
	case SyntaxDelegate:
		return KindDelegate
	case SyntaxEvent, SyntaxEventField:
		return KindEvent
	case SyntaxEnum:
		return KindEnum
	case SyntaxInterface:
		return KindInterface
	case SyntaxProperty:
		return KindProperty
	case SyntaxIndexer:
		return KindIndexer
	case SyntaxMethod:
		return KindMethod
	case SyntaxStruct, SyntaxRecordStruct:
		return KindStruct
	case SyntaxClass, SyntaxRecord:
		return KindClass
	case SyntaxNamespace:
		return KindNamespace
	case SyntaxOperator, SyntaxConversionOperator:
		return KindOperator
	default:
		return KindUnknown
	}
}

// Access is the effective visibility classification of a declaration.
type Access int

const (
	AccessPublic Access = iota
	AccessPublicExplicit
	AccessInternal
	AccessProtectedInternal
	AccessProtected
	AccessPrivate
)

var accessNames = [...]string{
	AccessPublic:            "public",
	AccessPublicExplicit:    "public-explicit",
	AccessInternal:          "internal",
	AccessProtectedInternal: "protected-internal",
	AccessProtected:         "protected",
	AccessPrivate:           "private",
}

func (a Access) String() string {
	if a < 0 || int(a) >= len(accessNames) {
		return accessNames[AccessPublic]
	}
	return accessNames[a]
}

// NormalizeAccessName folds case and treats space, hyphen and underscore as the same
// separator, so "protected internal" and "Protected-Internal" compare equal.
func NormalizeAccessName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "-")
}

// AccessOf applies the access rules in precedence order; the first match wins.
func AccessOf(mods Modifier, explicitInterface bool) Access {
	switch {
	case mods.Has(ModPrivate):
		return AccessPrivate
	case explicitInterface:
		return AccessPublicExplicit
	case mods.Has(ModProtected | ModInternal):
		return AccessProtectedInternal
	case mods.Has(ModInternal):
		return AccessInternal
	case mods.Has(ModProtected):
		return AccessProtected
	default:
		return AccessPublic
	}
}

// Attrs are the binary modifier attributes the ordering policy can prefer.
type Attrs struct {
	Const    bool
	Static   bool
	Readonly bool
	Override bool
}

// AttrsOf extracts the attribute flags from a modifier set.
func AttrsOf(mods Modifier) Attrs {
	return Attrs{
		Const:    mods.Has(ModConst),
		Static:   mods.Has(ModStatic),
		Readonly: mods.Has(ModReadonly),
		Override: mods.Has(ModOverride),
	}
}

// Class is everything the ordering engine derives from a single declaration.
type Class struct {
	Kind   Kind
	Access Access
	Attrs  Attrs
	Name   string
}

// Classify derives the kind, access, attributes and display name of a node.
// A nil node classifies as KindUnknown.
func Classify(n Node) Class {
	if n == nil {
		return Class{Kind: KindUnknown}
	}
	mods := n.Modifiers()
	return Class{
		Kind:   KindOf(n.Syntax()),
		Access: AccessOf(mods, n.ExplicitInterface()),
		Attrs:  AttrsOf(mods),
		Name:   DisplayName(n),
	}
}

// DisplayName joins the identifiers a declaration introduces with ",". It is only used
// for alphabetical tie-breaking.
func DisplayName(n Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Identifiers(), ",")
}
