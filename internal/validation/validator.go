package validation

import (
	"strings"

	"github.com/mesh-intelligence/backoffice/internal/form"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// EditPolicy decides how a field is validated when a record is edited.
// Create mode always runs every rule.
type EditPolicy int

const (
	// EditValidate runs the same rules as create.
	EditValidate EditPolicy = iota
	// EditOptional runs the rules only when the field, or one of the
	// fields it depends on, carries a value. Password fields use it: an
	// edit that leaves them blank keeps the stored password.
	EditOptional
	// EditLocked rejects any change to the stored value. Case is ignored.
	EditLocked
)

// Message returned for a locked field whose value changed.
const msgLocked = "cannot be changed after creation"

// Message returned for draft keys the entity does not have.
const msgUnknownField = "unknown field"

// FieldSpec is the rule set of one field.
type FieldSpec struct {
	Name      string
	Edit      EditPolicy
	Rules     []Rule
	DependsOn []string
}

// Field declares the rules of one field.
func Field(name string, policy EditPolicy, rules ...Rule) FieldSpec {
	return FieldSpec{Name: name, Edit: policy, Rules: rules}
}

// After marks the field as depending on others for EditOptional.
func (f FieldSpec) After(fields ...string) FieldSpec {
	f.DependsOn = append(f.DependsOn, fields...)
	return f
}

// Validator validates drafts of one entity.
type Validator struct {
	entity string
	fields []FieldSpec
	index  map[string]int
}

// New builds a validator. Fields are reported in declaration order.
func New(entity string, fields ...FieldSpec) *Validator {
	v := &Validator{
		entity: entity,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		v.index[f.Name] = i
	}
	return v
}

// Entity returns the entity name the validator was built for.
func (v *Validator) Entity() string { return v.entity }

// Fields returns the validated field names in declaration order.
func (v *Validator) Fields() []string {
	out := make([]string, len(v.fields))
	for i, f := range v.fields {
		out[i] = f.Name
	}
	return out
}

// Has reports whether field belongs to the entity.
func (v *Validator) Has(field string) bool {
	_, ok := v.index[field]
	return ok
}

// ValidateField returns the first failing rule's message for field, or ""
// when the value is acceptable. Fields the validator does not know are
// reported as unknown.
func (v *Validator) ValidateField(field, value string, draft types.Values, ctx Context) string {
	i, ok := v.index[field]
	if !ok {
		return msgUnknownField
	}
	spec := v.fields[i]

	if ctx.Mode == form.ModeEdit {
		switch spec.Edit {
		case EditOptional:
			if !supplied(value, spec.DependsOn, draft) {
				return ""
			}
		case EditLocked:
			if !strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(ctx.Original[field])) {
				return msgLocked
			}
			return ""
		}
	}

	for _, rule := range spec.Rules {
		if msg := rule(value, draft, ctx); msg != "" {
			return msg
		}
	}
	return ""
}

func supplied(value string, dependsOn []string, draft types.Values) bool {
	if value != "" {
		return true
	}
	for _, f := range dependsOn {
		if draft[f] != "" {
			return true
		}
	}
	return false
}

// ValidateAll validates every declared field of draft and flags unknown
// draft keys. The result carries an entry for every declared field, empty
// when the field is valid.
func (v *Validator) ValidateAll(draft types.Values, ctx Context) form.Errors {
	errs := make(form.Errors, len(v.fields))
	for _, f := range v.fields {
		errs[f.Name] = v.ValidateField(f.Name, draft[f.Name], draft, ctx)
	}
	for key := range draft {
		if !v.Has(key) {
			errs[key] = msgUnknownField
		}
	}
	return errs
}

// Check refreshes the errors of a form in place.
func (v *Validator) Check(s *form.State, ctx Context) {
	s.Errors = v.ValidateAll(s.Values, ctx)
}
