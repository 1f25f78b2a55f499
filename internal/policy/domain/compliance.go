package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ComplianceFramework identifies a regulatory or industry standard a policy
// can be bound to.
type ComplianceFramework string

const (
	FrameworkFIPS140_2   ComplianceFramework = "fips-140-2"
	FrameworkNISTSP80057 ComplianceFramework = "nist-sp-800-57"
	FrameworkPCIDSS      ComplianceFramework = "pci-dss"
	FrameworkHIPAA       ComplianceFramework = "hipaa"
	FrameworkSOX         ComplianceFramework = "sox"
	FrameworkISO27001    ComplianceFramework = "iso-27001"
)

// ComplianceRules captures the rotation-relevant requirements a compliance
// framework imposes.
type ComplianceRules struct {
	MaxKeyAgeDays       int      `yaml:"max_key_age_days"`
	RequirePFS          bool     `yaml:"require_pfs"`
	AllowedAlgorithms   []string `yaml:"allowed_algorithms"`
	MinTLSVersion       string   `yaml:"min_tls_version"`
	AuditRetentionYears int      `yaml:"audit_retention_years"`
}

//go:embed compliance_frameworks.yaml
var complianceFrameworksYAML []byte

// complianceTable is the parsed compliance framework -> rules mapping,
// loaded once from the embedded YAML bundle.
var complianceTable map[ComplianceFramework]ComplianceRules

func init() {
	var raw map[string]ComplianceRules
	if err := yaml.Unmarshal(complianceFrameworksYAML, &raw); err != nil {
		panic(fmt.Sprintf("policy: failed to parse embedded compliance framework table: %v", err))
	}
	complianceTable = make(map[ComplianceFramework]ComplianceRules, len(raw))
	for k, v := range raw {
		complianceTable[ComplianceFramework(k)] = v
	}
}

// ComplianceRulesFor returns the rules for framework, and whether it is known.
func ComplianceRulesFor(framework ComplianceFramework) (ComplianceRules, bool) {
	rules, ok := complianceTable[framework]
	return rules, ok
}
