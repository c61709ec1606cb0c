package expects

import (
	"strings"

	"github.com/flowspec/expects/pkg/errors"
	"github.com/flowspec/expects/pkg/expects/model"
	"github.com/flowspec/expects/pkg/fieldtype"
)

// DefaultSchemaTitle is the document title used when no override is given.
const DefaultSchemaTitle = "WorkflowTriggerInputs"

const defsPointerPrefix = "#/$defs/"

// SchemaOption configures schema generation.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	title string
}

// WithSchemaTitle overrides the generated document's title.
func WithSchemaTitle(title string) SchemaOption {
	return func(cfg *schemaConfig) {
		if title != "" {
			cfg.title = title
		}
	}
}

// BuildTriggerInputsSchema generates a standalone JSON Schema document
// describing a workflow's expected trigger inputs, or nil if no expectations
// are declared.
//
// The input is sanitized first, so the exported schema can never describe an
// unparsable type or an invalid default: schema export and persistence share
// one definition of a legal expects map. Internal "#/$defs/<name>" references
// are inlined to a fixed point and $defs is removed when no reference
// remains; irreducible references leave $defs intact so consumers relying on
// it keep working.
//
// An error is only possible if a sanitized type fails to resolve, which the
// sanitizer rules out by construction.
func BuildTriggerInputsSchema(expects *ExpectsMap, opts ...SchemaOption) (map[string]any, error) {
	cfg := schemaConfig{title: DefaultSchemaTitle}
	for _, opt := range opts {
		opt(&cfg)
	}

	if expects.IsEmpty() {
		return nil, nil
	}
	sanitized := Sanitize(expects)
	if sanitized.IsEmpty() {
		return nil, nil
	}

	fields := make([]model.Field, 0, sanitized.Len())
	for _, name := range sanitized.Names() {
		declared, _ := sanitized.Get(name)
		typ, err := fieldtype.Parse(declared.Type, name)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving sanitized field %q", name)
		}
		fields = append(fields, model.Field{
			Name:        name,
			Type:        typ,
			Description: declared.Description,
			Default:     declared.Default,
			HasDefault:  declared.HasDefault,
		})
	}

	doc := model.New(fields).Schema(cfg.title)

	if defs, ok := doc["$defs"].(map[string]any); ok {
		// Keep inlining until a pass makes no replacement. Each productive
		// pass resolves at least one reference, so len(defs)+1 passes bound
		// the loop even against a malformed self-referential definition.
		for pass := 0; pass <= len(defs); pass++ {
			if !inlineRefs(doc, defs) {
				break
			}
		}
		if !containsRefs(doc, true) {
			delete(doc, "$defs")
		}
	}
	return doc, nil
}

// inlineRefs walks the full schema tree once, merging "#/$defs/<name>"
// references into their referencing nodes. Keys already present on the node
// win over the inlined definition, so field-level overrides such as
// description and default survive. Returns true if at least one replacement
// was made; references to unknown definitions are left untouched and count
// as non-progress.
func inlineRefs(node any, defs map[string]any) bool {
	replaced := false

	switch value := node.(type) {
	case map[string]any:
		if ref, ok := value["$ref"].(string); ok && strings.HasPrefix(ref, defsPointerPrefix) {
			name := ref[strings.LastIndex(ref, "/")+1:]
			if def, ok := defs[name].(map[string]any); ok {
				delete(value, "$ref")
				for key, defValue := range def {
					if _, present := value[key]; !present {
						value[key] = copyTree(defValue)
					}
				}
				replaced = true
			}
		}
		for _, child := range value {
			if inlineRefs(child, defs) {
				replaced = true
			}
		}
	case []any:
		for _, item := range value {
			if inlineRefs(item, defs) {
				replaced = true
			}
		}
	}

	return replaced
}

// containsRefs reports whether any $ref key remains in the tree. With
// skipDefs set, references inside the $defs block itself are ignored.
func containsRefs(node any, skipDefs bool) bool {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			if key == "$ref" {
				return true
			}
			if skipDefs && key == "$defs" {
				continue
			}
			if containsRefs(child, skipDefs) {
				return true
			}
		}
	case []any:
		for _, item := range value {
			if containsRefs(item, skipDefs) {
				return true
			}
		}
	}
	return false
}

// copyTree deep-copies a schema subtree so inlined definitions never alias
// the $defs originals.
func copyTree(node any) any {
	switch value := node.(type) {
	case map[string]any:
		copied := make(map[string]any, len(value))
		for key, child := range value {
			copied[key] = copyTree(child)
		}
		return copied
	case []any:
		copied := make([]any, len(value))
		for i, item := range value {
			copied[i] = copyTree(item)
		}
		return copied
	default:
		return value
	}
}
