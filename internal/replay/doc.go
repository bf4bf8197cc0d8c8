// Package replay turns JSON-lines log files back into entries so they can be
// printed with the tinct formatter.
//
// Each line is decoded with a streaming JSON decoder so attribute order is
// kept; that order is the field order the template renderer substitutes in.
// The top-level keys time, level, msg (or message), error and logger fill the
// entry itself; template or {OriginalFormat} supplies the message template
// when the logger recorded one. Everything else is a field, with nested
// objects flattened as "parent.child".
//
// Lines that are not JSON objects are replayed verbatim as Information
// entries. Read keeps only the last N lines when asked, using a ring buffer so
// memory stays proportional to N rather than to the file size.
package replay
