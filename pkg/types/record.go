package types

// Values is a raw form draft: field name to the text the user entered.
// Lists are comma separated; numbers use their plain decimal form.
type Values map[string]string

// Clone returns a copy of v. A nil Values clones to an empty map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Merge returns a copy of v with every entry of patch applied on top.
func (v Values) Merge(patch Values) Values {
	out := v.Clone()
	for k, val := range patch {
		out[k] = val
	}
	return out
}

// Record is anything a list view can show: it has an id and exposes its
// fields by key.
type Record interface {
	// GetID returns the record's unique id.
	GetID() int64

	// Field returns the value stored under key, or false if the record has
	// no such field.
	Field(key string) (any, bool)
}

// Entity is a Record owned by a CRUD store. Entities are values; WithID
// returns a copy rather than mutating the receiver.
type Entity[T any] interface {
	Record

	// WithID returns a copy of the entity carrying id.
	WithID(id int64) T

	// Values renders the editable fields as a form draft.
	Values() Values
}
