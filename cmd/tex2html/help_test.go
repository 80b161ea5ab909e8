package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{args: nil, wantStdout: "Run 'tex2html help <command>'"},
		{args: []string{"convert"}, wantStdout: "TEX2HTML_ASSET_PATH"},
		{args: []string{"styles"}, wantStdout: "Usage: tex2html styles"},
		{args: []string{"completion"}, wantStdout: "eval \"$(tex2html completion bash)\""},
		{args: []string{"version"}, wantStdout: "Usage: tex2html version"},
		{args: []string{"help"}, wantStdout: "Usage: tex2html help [command]"},
		{args: []string{"doctor"}, wantStderr: "Unknown command: doctor"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()
			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestPrintConvertUsage_ListsClasses(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	printConvertUsage(&b)
	for _, want := range []string{"article", "book", "report", "--no-hyphenate", "--precision <n>"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("usage lacks %q", want)
		}
	}
}
