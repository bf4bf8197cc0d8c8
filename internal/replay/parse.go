package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/tinct/internal/bridge/slogbridge"
	"github.com/five82/tinct/internal/entry"
)

// ErrNotObject marks a line that is not a JSON object.
var ErrNotObject = errors.New("replay: line is not a JSON object")

// Record is one parsed log line.
type Record struct {
	Entry entry.Entry
	// Time is the timestamp carried by the line, zero when it had none.
	Time time.Time
}

// Reserved top-level keys. Everything else becomes a field.
const (
	keyTime     = "time"
	keyLevel    = "level"
	keyMsg      = "msg"
	keyMessage  = "message"
	keyError    = "error"
	keyLogger   = "logger"
	keyTemplate = "template"
)

// ParseLine decodes one JSON log line, as written by slog.JSONHandler and
// most structured loggers, keeping attribute order. Nested objects are
// flattened with "." between keys. Lines that are not JSON objects return an
// error wrapping ErrNotObject.
func ParseLine(line []byte) (Record, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, ErrNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	rec := Record{Entry: entry.Entry{Level: entry.Information}}
	fields := entry.Fields{}
	if err := decodeObject(dec, "", &rec, &fields); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	rec.Entry.State = fields
	return rec, nil
}

func decodeObject(dec *json.Decoder, prefix string, rec *Record, fields *entry.Fields) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if prefix == "" && reserved(key, raw, rec, fields) {
			continue
		}
		if len(raw) > 0 && raw[0] == '{' {
			sub := json.NewDecoder(bytes.NewReader(raw))
			sub.UseNumber()
			if err := decodeObject(sub, prefix+key+".", rec, fields); err != nil {
				return err
			}
			continue
		}
		v, err := decodeScalar(raw)
		if err != nil {
			return err
		}
		*fields = append(*fields, entry.F(prefix+key, v))
	}

	tok, err = dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '}' {
		return fmt.Errorf("expected end of object, got %v", tok)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after object")
	}
	return nil
}

// reserved applies a top-level reserved key to rec. It reports false when the
// value is not usable for its reserved meaning, so it is kept as a field.
func reserved(key string, raw json.RawMessage, rec *Record, fields *entry.Fields) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		if key == keyError && len(raw) > 0 && raw[0] == '{' {
			rec.Entry.Err = errors.New(string(raw))
			return true
		}
		return false
	}

	switch key {
	case keyTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return false
		}
		rec.Time = t
	case keyLevel:
		level, ok := parseLevel(s)
		if !ok {
			return false
		}
		rec.Entry.Level = level
	case keyMsg, keyMessage:
		rec.Entry.Message = s
	case keyError:
		rec.Entry.Err = errors.New(s)
	case keyLogger:
		rec.Entry.Category = s
	case keyTemplate, entry.OriginalFormatKey:
		*fields = append(*fields, entry.Field{Key: entry.OriginalFormatKey, Value: entry.StringValue(s)})
	default:
		return false
	}
	return true
}

func parseLevel(s string) (entry.Level, bool) {
	if level, err := entry.ParseLevel(s); err == nil {
		return level, true
	}
	// slog writes offsets such as "DEBUG-4" and "ERROR+4".
	var sl slog.Level
	if err := sl.UnmarshalText([]byte(s)); err == nil {
		return slogbridge.Level(sl), true
	}
	return entry.Information, false
}

func decodeScalar(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return v, nil
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	if f, err := n.Float64(); err == nil {
		return f, nil
	}
	return n.String(), nil
}
