package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestEscapeAttribute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"ampersand first", "&lt;", "&amp;lt;"},
		{"all four", `<a href="x">&`, "&lt;a href=&quot;x&quot;&gt;&amp;"},
		{"single quote kept", "it's", "it's"},
		{"unicode kept", "héllo 世界", "héllo 世界"},
		{"newline kept", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeAttribute(tt.input))
		})
	}
}

// U+1F600 is D83D DE00 in UTF-16.
const (
	grin     = "\U0001F600"
	wtfHigh  = "\xed\xa0\xbd" // unpaired D83D
	wtfLow   = "\xed\xb8\x80" // unpaired DE00
	invalid  = "\xff"
	grinRef  = "&#128512;"
	highRef  = "&#55357;"
	lowRef   = "&#56832;"
	fffd     = "\uFFFD"
	fffdRef  = "&#65533;"
	eAcute   = "é"
	eAcuteNR = "&#233;"
)

func TestText_InternationalCharacters(t *testing.T) {
	tests := []struct {
		name     string
		intl     bool
		mode     SurrogateMode
		input    string
		expected string
	}{
		{name: "latin kept", input: "caf" + eAcute, expected: "caf" + eAcute},
		{name: "cjk kept", input: "世界", expected: "世界"},
		{name: "latin encoded", intl: true, input: eAcute, expected: eAcuteNR},
		{name: "ascii encoded with flag", intl: true, input: "ab", expected: "&#97;&#98;"},
		{name: "specials keep names with flag", intl: true, input: `<&'`, expected: "&lt;&amp;&#39;"},

		{name: "joint pair always encoded", input: grin, expected: grinRef},
		{name: "joint pair with flag", intl: true, input: grin, expected: grinRef},
		{name: "per-unit pair", mode: SurrogatesPerUnit, input: grin, expected: highRef + fffd},
		{name: "per-unit pair with flag", mode: SurrogatesPerUnit, intl: true, input: grin, expected: highRef + lowRef},

		{name: "wtf-8 pair joined", input: wtfHigh + wtfLow, expected: grinRef},
		{name: "wtf-8 pair per unit", mode: SurrogatesPerUnit, input: wtfHigh + wtfLow, expected: highRef + fffd},
		{name: "lone high", input: "a" + wtfHigh + "b", expected: "a" + highRef + "b"},
		{name: "lone low", input: wtfLow, expected: fffd},
		{name: "lone low with flag", intl: true, input: wtfLow, expected: lowRef},
		{name: "high then text", input: wtfHigh + "x" + wtfLow, expected: highRef + "x" + fffd},

		{name: "invalid byte", input: "a" + invalid + "b", expected: "a" + fffd + "b"},
		{name: "invalid byte with flag", intl: true, input: invalid, expected: fffdRef},
		{name: "truncated sequence", input: "\xe4\xb8", expected: fffd + fffd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newTestSerializer(t, &fakePolicy{intl: tt.intl}, WithSurrogateMode(tt.mode))
			require.NoError(t, s.Text(tt.input))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestIntlFlagAppliesToTextOnly(t *testing.T) {
	s, buf := newTestSerializer(t, &fakePolicy{intl: true})
	require.NoError(t, s.StartElement("abbr", []html.Attribute{{Key: "title", Val: eAcute}}))
	require.NoError(t, s.Text(eAcute))

	assert.Equal(t, `<abbr title="`+eAcute+`">`+eAcuteNR, buf.String())
}

func TestSurrogateMode_String(t *testing.T) {
	assert.Equal(t, "joint", SurrogatesJoint.String())
	assert.Equal(t, "per-unit", SurrogatesPerUnit.String())
	assert.Equal(t, "SurrogateMode(7)", SurrogateMode(7).String())
}
