package pipeline

import (
	"context"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "CRLF normalized", input: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "blank lines compressed", input: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "highlight marked", input: "a ==b== c", want: "a " + MarkStartPlaceholder + "b" + MarkEndPlaceholder + " c"},
		{name: "common indentation removed", input: "    # Title\n\n    text\n      more", want: "# Title\n\ntext\n  more"},
		{name: "mixed indentation keeps the shared prefix", input: "\t  a\n\tb", want: "  a\nb"},
		{name: "unindented line keeps everything", input: "  a\nb", want: "  a\nb"},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &CommonMarkPreprocessor{}
	if got := p.PreprocessMarkdown(ctx, "a\r\nb"); got != "a\r\nb" {
		t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	in := "x " + MarkStartPlaceholder + "y" + MarkEndPlaceholder
	if got := ConvertMarkPlaceholders(in); got != "x <mark>y</mark>" {
		t.Errorf("ConvertMarkPlaceholders() = %q", got)
	}
}
