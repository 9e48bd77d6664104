package validation

import (
	"encoding/json"
	"sort"
)

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// HasAny is true when at least one message is non-empty. A key holding an
// empty message does not count.
func (f FieldErrors) HasAny() bool {
	for _, msg := range f {
		if msg != "" {
			return true
		}
	}
	return false
}

// StepErrors mirrors the shape of a step: scalar fields carry a message,
// sequences carry one FieldErrors per entry.
type StepErrors struct {
	Fields  FieldErrors
	Entries map[string][]FieldErrors
}

func (e *StepErrors) set(field, msg string) {
	if e.Fields == nil {
		e.Fields = FieldErrors{}
	}
	e.Fields[field] = msg
}

func (e *StepErrors) entries(seq string, entries []FieldErrors) {
	if e.Entries == nil {
		e.Entries = map[string][]FieldErrors{}
	}
	e.Entries[seq] = entries
}

func (e *StepErrors) general(seq, msg string) {
	e.entries(seq, []FieldErrors{{"general": msg}})
}

// Field returns the message for a scalar field.
func (e StepErrors) Field(name string) string {
	return e.Fields[name]
}

// Entry returns the errors of entry i of seq, nil when absent.
func (e StepErrors) Entry(seq string, i int) FieldErrors {
	list := e.Entries[seq]
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

// HasErrors is the gate for advancing past a step.
func HasErrors(e StepErrors) bool {
	if e.Fields.HasAny() {
		return true
	}
	for _, list := range e.Entries {
		for _, entry := range list {
			if entry.HasAny() {
				return true
			}
		}
	}
	return false
}

func (e StepErrors) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+len(e.Entries))
	for k, v := range e.Fields {
		out[k] = v
	}
	for k, v := range e.Entries {
		out[k] = v
	}
	return json.Marshal(out)
}

func (e *StepErrors) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = StepErrors{}
	for k, v := range raw {
		var msg string
		if err := json.Unmarshal(v, &msg); err == nil {
			e.set(k, msg)
			continue
		}
		var list []FieldErrors
		if err := json.Unmarshal(v, &list); err != nil {
			return err
		}
		e.entries(k, list)
	}
	return nil
}

// Keys lists the top-level keys with errors, sorted.
func (e StepErrors) Keys() []string {
	var keys []string
	for k, msg := range e.Fields {
		if msg != "" {
			keys = append(keys, k)
		}
	}
	for k, list := range e.Entries {
		for _, entry := range list {
			if entry.HasAny() {
				keys = append(keys, k)
				break
			}
		}
	}
	sort.Strings(keys)
	return keys
}
