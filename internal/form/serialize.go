package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

type coercer func(f *Field) (any, error)

// coercers maps each field type to its coercion rule. Together with the
// builders table in field.go this keeps type handling closed and
// exhaustive.
var coercers = map[schema.FieldType]coercer{
	schema.FieldCheckbox: coerceCheckbox,
	schema.FieldNumber:   coerceNumber,
	schema.FieldText:     coerceString,
	schema.FieldPassword: coerceString,
}

func coerceCheckbox(f *Field) (any, error) {
	return f.Checked(), nil
}

func coerceNumber(f *Field) (any, error) {
	raw := strings.TrimSpace(f.RawValue())
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, core.ErrValidation(core.CodeBadNumber,
			fmt.Sprintf("field %q: %q is not a number", f.Name, raw))
	}
	return n, nil
}

func coerceString(f *Field) (any, error) {
	raw := f.RawValue()
	if raw == "" {
		// Explicit null distinguishes "not set" from empty string.
		return nil, nil
	}
	return raw, nil
}

// Serialize reconstructs the typed key-value payload from the live form
// state. Only controls carrying a submission name and not currently
// disabled are included; a single coercion failure fails the whole
// serialization rather than sending partially-typed data.
func (f *Form) Serialize() (map[string]any, error) {
	out := make(map[string]any)
	for _, sec := range f.Sections {
		if sec.ReadOnly {
			continue
		}
		for _, field := range sec.Fields {
			if field.Name == "" || field.Disabled() {
				continue
			}
			coerce, ok := coercers[field.Type]
			if !ok {
				return nil, core.ErrSchema(core.CodeUnsupportedFieldType,
					"no coercion for field type "+string(field.Type))
			}
			value, err := coerce(field)
			if err != nil {
				return nil, err
			}
			out[field.Name] = value
		}
	}
	return out, nil
}
