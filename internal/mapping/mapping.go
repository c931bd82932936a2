// Package mapping loads the static field-mapping table: per-form field
// semantics, header/child link groups, and resolution specs. The table is
// loaded once at process start and treated as immutable for the run; the
// parsing core itself never hard-codes per-form-code knowledge.
package mapping

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

//go:embed default_mapping.yaml
var defaultMappingYAML []byte

// Form roles for linking.
const (
	RoleHeader     = "header"
	RoleChild      = "child"
	RoleStandalone = "standalone"
)

// FormDef describes one form code: its label, the checklist category its
// items fall under, per-field semantic names, and the resolution spec for
// its entries. NoDedup marks forms whose items must never be deduplicated
// (several legitimate documents may share one payer).
type FormDef struct {
	Label    string            `yaml:"label"`
	Category string            `yaml:"category"`
	NoDedup  bool              `yaml:"no_dedup"`
	Fields   map[string]string `yaml:"fields"`
	Resolve  *types.ResolveSpec `yaml:"resolve"`
}

// Mapping is the full configuration table.
type Mapping struct {
	MemoSuffix    string             `yaml:"memo_suffix"`
	OwnerKey      string             `yaml:"owner_key"`
	Sentinels     []string           `yaml:"sentinels"`
	FallbackLabel string             `yaml:"fallback_label"`
	Forms         map[string]FormDef `yaml:"forms"`
	LinkGroups    []types.LinkGroup  `yaml:"link_groups"`
}

// Default returns the embedded mapping table.
func Default() *Mapping {
	m, err := Parse(defaultMappingYAML)
	if err != nil {
		// The embedded table is part of the build; failing to parse it is
		// a programming error, not a runtime condition.
		panic(fmt.Sprintf("embedded mapping: %v", err))
	}
	return m
}

// Load reads a mapping table from a YAML file.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a mapping table.
func Parse(data []byte) (*Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidMapping, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mapping) validate() error {
	for i, g := range m.LinkGroups {
		if g.Name == "" {
			return fmt.Errorf("%w: link group %d has no name", types.ErrInvalidMapping, i)
		}
		if g.Header == "" {
			return fmt.Errorf("%w: link group %q has no header form", types.ErrInvalidMapping, g.Name)
		}
		if len(g.Children) == 0 {
			return fmt.Errorf("%w: link group %q has no child forms", types.ErrInvalidMapping, g.Name)
		}
	}
	return nil
}

// FieldNumber returns the field number carrying the given semantic name on
// the given form, or "" when the form or name is not mapped.
func (m *Mapping) FieldNumber(formCode, name string) string {
	def, ok := m.Forms[formCode]
	if !ok {
		return ""
	}
	for num, n := range def.Fields {
		if n == name {
			return num
		}
	}
	return ""
}

// FormLabel returns the human-readable label for a form code, falling back
// to "Form <code>" for unmapped codes.
func (m *Mapping) FormLabel(code string) string {
	if def, ok := m.Forms[code]; ok && def.Label != "" {
		return def.Label
	}
	return "Form " + code
}

// Form returns the definition for a form code.
func (m *Mapping) Form(code string) (FormDef, error) {
	def, ok := m.Forms[code]
	if !ok {
		return FormDef{}, fmt.Errorf("%w: %s", types.ErrFormNotMapped, code)
	}
	return def, nil
}

// Spec returns the resolution spec for a form code with table-level
// defaults (sentinels, fallback label, memo suffix, owner key) filled in.
// The second return is false when the form declares no spec.
func (m *Mapping) Spec(formCode string) (types.ResolveSpec, bool) {
	def, ok := m.Forms[formCode]
	if !ok || def.Resolve == nil {
		return types.ResolveSpec{}, false
	}
	spec := *def.Resolve
	if len(spec.Sentinels) == 0 {
		spec.Sentinels = m.Sentinels
	}
	if spec.Fallback == "" {
		spec.Fallback = m.FallbackLabel
	}
	if spec.MemoSuffix == "" {
		spec.MemoSuffix = m.MemoSuffix
	}
	if spec.OwnerKey == "" {
		spec.OwnerKey = m.OwnerKey
	}
	return spec, true
}

// Role classifies a form code by the link groups: header, child, or
// standalone when no group names it.
func (m *Mapping) Role(code string) string {
	for _, g := range m.LinkGroups {
		if g.Header == code {
			return RoleHeader
		}
		for _, c := range g.Children {
			if c == code {
				return RoleChild
			}
		}
	}
	return RoleStandalone
}

// Groups returns the declared link groups.
func (m *Mapping) Groups() []types.LinkGroup {
	return m.LinkGroups
}
