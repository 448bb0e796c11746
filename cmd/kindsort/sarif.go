package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"

	"kindsort/internal/order"
	"kindsort/internal/scan"
	"kindsort/internal/version"
)

// SARIF 2.1.0 schema types
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SARIFReport is the top-level SARIF document.
type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver describes the primary analysis component.
type SARIFDriver struct {
	Name            string      `json:"name"`
	Version         string      `json:"version,omitempty"`
	Rules           []SARIFRule `json:"rules,omitempty"`
	SemanticVersion string      `json:"semanticVersion,omitempty"`
}

// SARIFRule describes a rule that detected an issue.
type SARIFRule struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name,omitempty"`
	ShortDescription     *SARIFMessage           `json:"shortDescription,omitempty"`
	DefaultConfiguration *SARIFRuleConfiguration `json:"defaultConfiguration,omitempty"`
}

// SARIFRuleConfiguration describes the default configuration for a rule.
type SARIFRuleConfiguration struct {
	Level string `json:"level,omitempty"` // error, warning, note, none
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID       string                 `json:"ruleId"`
	RuleIndex    int                    `json:"ruleIndex"`
	Level        string                 `json:"level,omitempty"`
	Message      SARIFMessage           `json:"message"`
	Locations    []SARIFLocation        `json:"locations,omitempty"`
	Fingerprints map[string]string      `json:"fingerprints,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// SARIFMessage contains text in various formats.
type SARIFMessage struct {
	Text string `json:"text,omitempty"`
}

// SARIFLocation describes where a result was found.
type SARIFLocation struct {
	PhysicalLocation *SARIFPhysicalLocation `json:"physicalLocation,omitempty"`
}

// SARIFPhysicalLocation identifies a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation *SARIFArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *SARIFRegion           `json:"region,omitempty"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI       string `json:"uri,omitempty"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion identifies a region within a file.
type SARIFRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation describes a single invocation of the tool.
type SARIFInvocation struct {
	ExecutionSuccessful bool   `json:"executionSuccessful"`
	Machine             string `json:"machine,omitempty"`
}

// sarifRules lists every rule, so ruleIndex is stable across runs.
var sarifRules = []SARIFRule{
	{
		ID:               order.RuleTypeOrder,
		Name:             "TypeMemberOrder",
		ShortDescription: &SARIFMessage{Text: "Type members are not in canonical order"},
		DefaultConfiguration: &SARIFRuleConfiguration{
			Level: "warning",
		},
	},
	{
		ID:               order.RuleNamespaceOrder,
		Name:             "NamespaceMemberOrder",
		ShortDescription: &SARIFMessage{Text: "Namespace members are not in canonical order"},
		DefaultConfiguration: &SARIFRuleConfiguration{
			Level: "warning",
		},
	},
}

// FormatReportAsSARIF converts a check report to SARIF. Each result carries the policy
// it was checked against in properties.sortOptions.
func FormatReportAsSARIF(r *scan.Report) (string, error) {
	ruleIndex := make(map[string]int, len(sarifRules))
	for i, rule := range sarifRules {
		ruleIndex[rule.ID] = i
	}

	results := make([]SARIFResult, 0, len(r.Findings))
	for _, f := range r.Findings {
		results = append(results, SARIFResult{
			RuleID:    f.Rule,
			RuleIndex: ruleIndex[f.Rule],
			Level:     "warning",
			Message:   SARIFMessage{Text: f.Message},
			Locations: []SARIFLocation{
				{
					PhysicalLocation: &SARIFPhysicalLocation{
						ArtifactLocation: &SARIFArtifactLocation{
							URI:       f.Location.Path,
							URIBaseID: "%SRCROOT%",
						},
						Region: &SARIFRegion{
							StartLine:   f.Location.StartLine,
							StartColumn: f.Location.StartColumn,
							EndLine:     f.Location.EndLine,
							EndColumn:   f.Location.EndColumn,
						},
					},
				},
			},
			Fingerprints: map[string]string{
				"kindsort/v1": generateFingerprint(f),
			},
			Properties: map[string]interface{}{
				"kind":        f.Kind.String(),
				"name":        f.Name,
				"sortOptions": f.Policy,
			},
		})
	}

	report := SARIFReport{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{
			{
				Tool: SARIFTool{
					Driver: SARIFDriver{
						Name:            version.Tool,
						Version:         r.Version,
						SemanticVersion: r.Version,
						Rules:           sarifRules,
					},
				},
				Results: results,
				Invocations: []SARIFInvocation{
					{
						ExecutionSuccessful: len(r.Errors) == 0,
						Machine:             runtime.GOOS + "/" + runtime.GOARCH,
					},
				},
			},
		},
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal SARIF: %w", err)
	}
	return string(data), nil
}

// generateFingerprint identifies a finding by file, container and rule, so it survives
// edits that only move the container.
func generateFingerprint(f order.Finding) string {
	data := fmt.Sprintf("%s:%s:%s", f.Location.Path, f.Name, f.Rule)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:16]
}
