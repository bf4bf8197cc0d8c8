package entry

import (
	"strconv"
	"strings"
)

// OriginalFormatKey is the sentinel field key that carries the raw message
// template. It is never substituted into the message.
const OriginalFormatKey = "{OriginalFormat}"

// Field is one named template parameter.
type Field struct {
	Key   string
	Value Value
}

// F builds a Field, converting v with AnyValue.
func F(key string, v any) Field {
	return Field{Key: key, Value: AnyValue(v)}
}

// Fields is the structured state of an entry. Order is the template argument
// order.
type Fields []Field

// Lookup returns the value of the first field named key.
func (fs Fields) Lookup(key string) (Value, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// OriginalFormat returns the raw template held under OriginalFormatKey.
func (fs Fields) OriginalFormat() (string, bool) {
	v, ok := fs.Lookup(OriginalFormatKey)
	if !ok {
		return "", false
	}
	if v.Kind() == KindString {
		return v.Str(), true
	}
	return v.String(), true
}

// String renders the fields as space-separated key=value pairs, skipping the
// sentinel.
func (fs Fields) String() string {
	var b strings.Builder
	for _, f := range fs {
		if f.Key == OriginalFormatKey {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value.String())
	}
	return b.String()
}

// Entry is one log event handed to the formatter. It is consumed once and
// never retained.
type Entry struct {
	Level    Level
	Category string // logger name, optional
	// Message is the host's default textual form of the state. For structured
	// state without a sentinel it is also the template.
	Message string
	// State is Fields for structured events; any other value is unstructured
	// and only Message is printed.
	State any
	Err   error
}

// New returns a structured entry whose template is message.
func New(level Level, message string, fields ...Field) Entry {
	return Entry{Level: level, Message: message, State: Fields(fields)}
}

// Templated builds a structured entry from positional arguments, pairing them
// with the placeholders of template in order. Extra arguments are kept under
// positional keys ("3"); missing ones leave their placeholder unfilled.
func Templated(level Level, template string, args ...any) Entry {
	names := Placeholders(template)
	fields := make(Fields, 0, len(args)+1)
	for i, arg := range args {
		key := strconv.Itoa(i)
		if i < len(names) {
			key = names[i]
		}
		fields = append(fields, F(key, arg))
	}
	fields = append(fields, Field{Key: OriginalFormatKey, Value: StringValue(template)})
	return Entry{Level: level, Message: template, State: fields}
}

// Placeholders returns the names of the {name} placeholders in template, in
// order of first appearance. Doubled braces are literal.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		if i+1 < len(template) && template[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexAny(template[i+1:], "{}")
		if end < 0 {
			break
		}
		if template[i+1+end] == '{' {
			continue
		}
		name := template[i+1 : i+1+end]
		i += end + 1
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
