package announce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		ctype string
		text  string
		html  bool
	}{
		{name: "empty", body: "  ", ctype: "text/plain", text: ""},
		{name: "plain", body: "Maintenance at 22:00", ctype: "text/plain", text: "Maintenance at 22:00"},
		{name: "json message", body: `{"message":" New catalogs! "}`, ctype: "application/json", text: "New catalogs!"},
		{name: "json html wins", body: `{"html":"<b>Hi</b> there","message":"ignored"}`, ctype: "application/json", text: "Hi there", html: true},
		{name: "json empty", body: `{}`, ctype: "application/json", text: ""},
		{name: "json string", body: `"Quoted note"`, ctype: "application/json", text: "Quoted note"},
		{name: "html body", body: `<p>One</p><p>Two<br>Three</p>`, ctype: "text/html", text: "One\nTwo\nThree", html: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Parse([]byte(tc.body), tc.ctype)
			assert.Equal(t, tc.text, b.Text)
			assert.Equal(t, tc.text == "", b.Empty())
			assert.Equal(t, tc.html, b.HTML != "")
		})
	}
}

func TestToText(t *testing.T) {
	got := ToText(`<div>Read the <a href="https://example.com/notes">release notes</a>.<script>alert(1)</script></div>`)
	assert.Equal(t, "Read the release notes (https://example.com/notes).", got)

	assert.Equal(t, "https://x.y", ToText(`<a href="https://x.y">https://x.y</a>`))
	assert.Equal(t, "a < b & c", ToText(`a &lt; b &amp; c`))
}
