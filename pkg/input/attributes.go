package input

import (
	"html"
	"strings"
)

// Attributes stores HTML attributes in insertion order so rendered markup is
// deterministic.
type Attributes struct {
	keys   []string
	values map[string]string
}

// Set assigns an attribute, keeping the original position when the key is
// already present.
func (a *Attributes) Set(key, value string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the attribute value or "" when unset.
func (a *Attributes) Get(key string) string {
	if a == nil || a.values == nil {
		return ""
	}
	return a.values[key]
}

// Has reports whether the attribute is set.
func (a *Attributes) Has(key string) bool {
	if a == nil || a.values == nil {
		return false
	}
	_, ok := a.values[key]
	return ok
}

// Delete removes an attribute.
func (a *Attributes) Delete(key string) {
	if a == nil || a.values == nil {
		return
	}
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, existing := range a.keys {
		if existing == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// AddClass appends a class to the class attribute unless already present.
func (a *Attributes) AddClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" {
		return
	}
	current := strings.Fields(a.Get("class"))
	for _, existing := range current {
		if existing == class {
			return
		}
	}
	a.Set("class", strings.Join(append(current, class), " "))
}

// Keys returns the attribute names in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.keys...)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// String renders the attributes as ` key="value"` pairs. Boolean attributes
// stored with an empty value render as a bare key.
func (a *Attributes) String() string {
	if a == nil || len(a.keys) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, key := range a.keys {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(key))
		value := a.values[key]
		if value == "" && isBooleanAttribute(key) {
			continue
		}
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteByte('"')
	}
	return builder.String()
}

func isBooleanAttribute(key string) bool {
	switch strings.ToLower(key) {
	case "required", "checked", "disabled", "readonly", "multiple", "selected", "autofocus", "novalidate", "hidden":
		return true
	default:
		return false
	}
}
