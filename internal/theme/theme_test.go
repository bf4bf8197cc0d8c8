package theme

import (
	"testing"

	"github.com/five82/tinct/internal/ansi"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	if got := Get("literate"); got.Name != "Literate" {
		t.Fatalf("Get(literate).Name = %q, want Literate", got.Name)
	}
	if got := Get("Unknown"); got.Name != "Code" {
		t.Fatalf("Get(Unknown).Name = %q, want Code (fallback)", got.Name)
	}
	if got := Get(""); got.Name != Default().Name {
		t.Fatalf("Get(\"\").Name = %q, want %q", got.Name, Default().Name)
	}
}

func TestNext(t *testing.T) {
	if got := Next("Code"); got != "Literate" {
		t.Fatalf("Next(Code) = %q, want Literate", got)
	}
	if got := Next("None"); got != "Code" {
		t.Fatalf("Next(None) = %q, want Code", got)
	}
	if got := Next("Unknown"); got != "Code" {
		t.Fatalf("Next(Unknown) = %q, want Code", got)
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"Code", "Literate", "Grayscale", "Sixteen", "None"}, names)
	names[0] = "mutated"
	assert.Equal(t, "Code", Names()[0])
}

func TestOptionalRolesFallBackToScalar(t *testing.T) {
	code := Get("Code")
	for _, r := range []Role{DateTime, Duration, Identifier} {
		assert.False(t, code.Defines(r), r.String())
		assert.Equal(t, code.Code(Scalar), code.Code(r), r.String())
	}

	sixteen := Get("Sixteen")
	assert.Equal(t, ansi.ForegroundCode(ansi.DarkCyan), sixteen.Code(DateTime))
	assert.NotEqual(t, sixteen.Code(Scalar), sixteen.Code(Identifier))
}

func TestEveryColoredThemeDefinesRequiredRoles(t *testing.T) {
	required := []Role{Text, SecondaryText, TertiaryText, Invalid, Null, Name, String, Number, Boolean, Scalar,
		LevelTrace, LevelDebug, LevelInformation, LevelWarning, LevelError, LevelCritical}
	for _, name := range Names() {
		if name == "None" {
			continue
		}
		th := Get(name)
		for _, r := range required {
			assert.True(t, th.Defines(r), "%s missing %s", name, r)
		}
	}
}

func TestWrap(t *testing.T) {
	th := Get("Code")
	assert.Equal(t, "\x1b[38;5;0216mx"+ansi.Reset, th.Wrap("x", String))
	assert.Equal(t, ansi.Reset, th.Close(String))

	none := Get("None")
	assert.Equal(t, "x", none.Wrap("x", String))
	assert.Empty(t, none.Open(Text))
	assert.Empty(t, none.Close(Text))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "LevelCritical", LevelCritical.String())
	assert.Equal(t, "Role(?)", Role(250).String())
	assert.Len(t, Roles(), int(roleCount))
}
