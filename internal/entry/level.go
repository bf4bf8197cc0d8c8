package entry

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry.
type Level uint8

const (
	Trace Level = iota
	Debug
	Information
	Warning
	Error
	Critical
	levelCount
)

var levelNames = [levelCount]string{"Trace", "Debug", "Information", "Warning", "Error", "Critical"}

func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Valid reports whether l is one of the defined severities.
func (l Level) Valid() bool {
	return l < levelCount
}

// Levels returns every severity from Trace to Critical.
func Levels() []Level {
	return []Level{Trace, Debug, Information, Warning, Error, Critical}
}

// ParseLevel accepts full names, common aliases and three-letter badges,
// case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "trc", "verbose", "vrb":
		return Trace, nil
	case "debug", "dbg":
		return Debug, nil
	case "info", "information", "inf", "notice":
		return Information, nil
	case "warn", "warning", "wrn":
		return Warning, nil
	case "error", "err", "eror":
		return Error, nil
	case "critical", "crit", "cri", "fatal", "ftl", "panic", "dpanic", "alert", "emerg":
		return Critical, nil
	}
	return Information, fmt.Errorf("unknown level %q", s)
}
