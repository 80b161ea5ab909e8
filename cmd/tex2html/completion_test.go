package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{shell: ShellBash, want: []string{"_tex2html()", "--class", "--precision", "article book report", "complete -F _tex2html tex2html"}},
		{shell: ShellZsh, want: []string{"#compdef tex2html", "'--class[", "'convert:", ":directory:_files -/"}},
		{shell: ShellFish, want: []string{"complete -c tex2html", "-l class", "-l output -s o"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script lacks %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "powershell"); !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q for an unsupported shell", buf.String())
	}
}

func TestGetCommands_ConvertFlags(t *testing.T) {
	t.Parallel()

	var convert *commandDef
	for _, c := range getCommands() {
		if c.Name == "convert" {
			convert = &c
		}
	}
	if convert == nil {
		t.Fatal("convert command missing")
	}

	byName := make(map[string]flagDef)
	for _, f := range convert.Flags {
		byName[f.Long] = f
	}
	tests := []struct {
		long  string
		short string
		typ   flagType
	}{
		{long: "class", typ: flagEnum},
		{long: "output", short: "o", typ: flagDir},
		{long: "style", short: "s", typ: flagFile},
		{long: "quiet", short: "q", typ: flagBool},
		{long: "workers", short: "w", typ: flagInt},
	}
	for _, tt := range tests {
		f, ok := byName[tt.long]
		if !ok {
			t.Errorf("flag --%s missing", tt.long)
			continue
		}
		if f.Short != tt.short || f.Type != tt.typ {
			t.Errorf("--%s = {short %q, type %v}, want {%q, %v}", tt.long, f.Short, f.Type, tt.short, tt.typ)
		}
	}
}
