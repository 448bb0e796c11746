package order

import (
	"fmt"

	"kindsort/internal/decl"
	"kindsort/internal/policy"
)

// Rule IDs reported in findings.
const (
	RuleTypeOrder      = "KSORT001"
	RuleNamespaceOrder = "KSORT002"
)

// RuleFor returns the rule that covers containers of kind k.
func RuleFor(k decl.Kind) string {
	if k == decl.KindNamespace {
		return RuleNamespaceOrder
	}
	return RuleTypeOrder
}

// Location identifies a container in a source file. Lines and columns are 1-based.
type Location struct {
	Path        string `json:"path"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartByte   int    `json:"startByte"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.StartLine, l.StartColumn)
}

// Finding reports a container whose direct members are not in canonical order. Policy
// holds the serialized policy the container was checked against.
type Finding struct {
	Rule     string    `json:"rule"`
	Location Location  `json:"location"`
	Name     string    `json:"name"`
	Kind     decl.Kind `json:"kind"`
	Message  string    `json:"message"`
	Policy   string    `json:"policy"`
}

// CheckOrder checks the direct members of c. It returns (nil, true) when they are in
// canonical order and a finding with false otherwise.
func CheckOrder(p policy.Policy, c decl.Container, loc Location) (*Finding, bool) {
	if c == nil {
		return nil, true
	}
	p = p.Resolved()
	members := c.Members()
	if len(members) < 2 || newRanker(p).ordered(members) {
		return nil, true
	}

	kind := decl.KindOf(c.Syntax())
	name := decl.DisplayName(c)
	return &Finding{
		Rule:     RuleFor(kind),
		Location: loc,
		Name:     name,
		Kind:     kind,
		Message:  fmt.Sprintf("%s is not sorted correctly", name),
		Policy:   policy.Serialize(p),
	}, false
}

// ApplyOrder returns c rebuilt in canonical order. It is Reorder under the name the
// corrector uses.
func ApplyOrder(p policy.Policy, c decl.Container) decl.Container {
	return Reorder(p, c)
}

// ApplyFinding corrects c with the policy recorded in f, independent of the policy
// currently configured.
func ApplyFinding(f Finding, c decl.Container) decl.Container {
	return Reorder(policy.Deserialize(f.Policy), c)
}
