// Package form provides the multi-step form model and controller used to collect résumé data.
package form

// FieldKind describes the kind of input a field expects.
type FieldKind string

// Field kinds supported by the form.
const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindURL      FieldKind = "url"
	KindTextarea FieldKind = "textarea"
	KindDate     FieldKind = "date"
	KindArray    FieldKind = "array"
)

// FormField describes a single input. Fields are static configuration.
type FormField struct {
	ID          string
	Label       string
	Kind        FieldKind
	Placeholder string
	Required    bool
	Multiline   bool
}

// FormStep is an ordered group of fields shown together.
type FormStep struct {
	Title  string
	Icon   string
	Fields []FormField
}

// FormData maps field IDs to the values typed so far.
type FormData map[string]string

// Clone returns a copy of the data.
func (d FormData) Clone() FormData {
	out := make(FormData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Lookup returns the value for id and whether it was set.
func (d FormData) Lookup(id string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d[id]
	return v, ok
}
