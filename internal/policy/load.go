package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/normalize"
)

// policySchema constrains the shape of a policy file before decoding. The
// structural rule checks happen afterwards in Validate.
var policySchema = map[string]any{
	"type":     "object",
	"required": []any{"announcement_id", "announcement_date", "min_units", "exclusive_area"},
	"properties": map[string]any{
		"announcement_id":   map[string]any{"type": "string", "minLength": 1},
		"title":             map[string]any{"type": "string"},
		"region":            map[string]any{"type": "string"},
		"announcement_date": map[string]any{"type": "string", "minLength": 1},
		"correction_date":   map[string]any{"type": "string"},
		"min_units":         map[string]any{"type": "integer", "minimum": 1},
		"exclusive_area": map[string]any{
			"type":     "object",
			"required": []any{"min", "max"},
			"properties": map[string]any{
				"min": map[string]any{"type": "number", "minimum": 0},
				"max": map[string]any{"type": "number", "minimum": 0},
			},
		},
		"seal_match_threshold":  map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"seal_manual_threshold": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"rules": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "document_name"},
				"properties": map[string]any{
					"id":            map[string]any{"type": "integer", "minimum": 1},
					"document_name": map[string]any{"type": "string", "minLength": 1},
					"description":   map[string]any{"type": "string"},
					"active":        map[string]any{"type": "boolean"},
				},
			},
		},
	},
}

// Load reads and validates a policy file. Missing thresholds fall back to the
// defaults so an announcement file only has to state what differs.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read policy file")
	}
	return Parse(data)
}

// Parse decodes a policy document from JSON.
func Parse(data []byte) (*Policy, error) {
	if err := validateSchema(data); err != nil {
		return nil, common.NewAppError("POLICY_SCHEMA", "policy file does not match schema", err)
	}

	p := Default()
	p.Rules = nil
	if err := json.Unmarshal(data, p); err != nil {
		return nil, common.WrapError(err, "decode policy")
	}
	if len(p.Rules) == 0 {
		p.Rules = defaultRules()
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func validateSchema(data []byte) error {
	b, err := json.Marshal(policySchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("policy.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("policy.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal policy: %w", err)
	}
	return schema.Validate(v)
}

// Validate checks structural invariants that the schema cannot express. A
// rule referencing an unknown document category is fatal for every case the
// policy would review, so loading fails outright.
func (p *Policy) Validate() error {
	if _, ok := normalize.ParseDate(p.AnnouncementDate); !ok {
		return common.NewAppError("POLICY_INVALID",
			fmt.Sprintf("unparseable announcement date %q", p.AnnouncementDate), common.ErrPolicyInvalid)
	}
	if p.CorrectionDate != "" {
		if _, ok := normalize.ParseDate(p.CorrectionDate); !ok {
			return common.NewAppError("POLICY_INVALID",
				fmt.Sprintf("unparseable correction date %q", p.CorrectionDate), common.ErrPolicyInvalid)
		}
	}
	if p.ExclusiveArea.Min >= p.ExclusiveArea.Max {
		return common.NewAppError("POLICY_INVALID", "exclusive area band is empty", common.ErrPolicyInvalid)
	}
	if p.SealManualThreshold > p.SealMatchThreshold {
		return common.NewAppError("POLICY_INVALID",
			"seal manual threshold exceeds match threshold", common.ErrPolicyInvalid)
	}

	seen := make(map[int]bool, len(p.Rules))
	for _, r := range p.Rules {
		if seen[r.ID] {
			return common.NewAppError("POLICY_INVALID",
				fmt.Sprintf("duplicate rule id %d", r.ID), common.ErrPolicyInvalid)
		}
		seen[r.ID] = true
		if _, ok := constants.Canonicalize(r.DocumentName); !ok {
			return common.NewAppError("POLICY_INVALID",
				fmt.Sprintf("rule %d references unknown document %q", r.ID, r.DocumentName), common.ErrPolicyInvalid)
		}
	}
	return nil
}
