package packages

import (
	"testing"

	"github.com/alnah/go-tex2html/internal/event"
)

func TestMarkdown(t *testing.T) {
	t.Parallel()

	runCases(t, "markdown", []renderCase{
		{
			name: "indented body",
			evs:  event.Env("markdown", event.Text("\n  # Notes\n\n  Some **bold** text.\n")),
			want: []string{`<div class="markdown"><h1 id="notes">Notes</h1>`, "<strong>bold</strong>"},
		},
		{
			name: "lists",
			evs:  event.Env("markdown", event.Text("\n- a\n- b\n")),
			want: []string{"<ul>", "<li>a</li>"},
		},
	})
}
