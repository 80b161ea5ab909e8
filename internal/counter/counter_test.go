package counter

import (
	"errors"
	"slices"
	"testing"
)

func sectioned(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	for _, c := range []struct{ name, parent string }{
		{"chapter", ""},
		{"section", "chapter"},
		{"subsection", "section"},
		{"figure", "chapter"},
	} {
		if err := r.New(c.name, c.parent); err != nil {
			t.Fatalf("New(%s): %v", c.name, err)
		}
	}
	return r
}

func TestStepClearsDependents(t *testing.T) {
	t.Parallel()

	r := sectioned(t)
	for _, c := range []string{"chapter", "section", "section", "subsection", "figure"} {
		if err := r.Step(c); err != nil {
			t.Fatalf("Step(%s): %v", c, err)
		}
	}

	if err := r.Step("chapter"); err != nil {
		t.Fatalf("Step(chapter): %v", err)
	}

	want := map[string]int{"chapter": 2, "section": 0, "subsection": 0, "figure": 0}
	for c, v := range want {
		if got, _ := r.Get(c); got != v {
			t.Errorf("%s = %d, want %d", c, got, v)
		}
	}
}

func TestStepLeavesSiblings(t *testing.T) {
	t.Parallel()

	r := sectioned(t)
	_ = r.Step("chapter")
	_ = r.Step("figure")
	_ = r.Step("section")

	if got, _ := r.Get("figure"); got != 1 {
		t.Errorf("figure = %d, want 1", got)
	}
}

func TestRegistryErrors(t *testing.T) {
	t.Parallel()

	r := sectioned(t)

	if err := r.New("section", ""); !errors.Is(err, ErrDuplicateCounter) {
		t.Errorf("duplicate New error = %v, want ErrDuplicateCounter", err)
	}
	if err := r.New("x", "nope"); !errors.Is(err, ErrNoSuchCounter) {
		t.Errorf("New with unknown parent error = %v, want ErrNoSuchCounter", err)
	}
	if err := r.Step("nope"); !errors.Is(err, ErrNoSuchCounter) {
		t.Errorf("Step error = %v, want ErrNoSuchCounter", err)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrNoSuchCounter) {
		t.Errorf("Get error = %v, want ErrNoSuchCounter", err)
	}
	if err := r.Set("nope", 1); !errors.Is(err, ErrNoSuchCounter) {
		t.Errorf("Set error = %v, want ErrNoSuchCounter", err)
	}
}

func TestResetCycle(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_ = r.New("a", "")
	_ = r.New("b", "a")
	if err := r.AddToReset("a", "b"); err != nil {
		t.Fatalf("AddToReset: %v", err)
	}

	if err := r.Step("a"); !errors.Is(err, ErrResetCycle) {
		t.Errorf("Step error = %v, want ErrResetCycle", err)
	}
}

func TestNamesKeepOrder(t *testing.T) {
	t.Parallel()

	r := sectioned(t)
	want := []string{"chapter", "section", "subsection", "figure"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style   Style
		n       int
		want    string
		wantErr bool
	}{
		{style: Arabic, n: 42, want: "42"},
		{style: Roman, n: 1994, want: "mcmxciv"},
		{style: RomanUpper, n: 14, want: "XIV"},
		{style: Roman, n: 0, want: ""},
		{style: Alph, n: 1, want: "a"},
		{style: AlphUpper, n: 26, want: "Z"},
		{style: Alph, n: 27, wantErr: true},
		{style: AlphUpper, n: 0, wantErr: true},
		{style: FnSymbol, n: 1, want: "*"},
		{style: FnSymbol, n: 3, want: "‡"},
		{style: FnSymbol, n: 9, want: "‡‡"},
		{style: FnSymbol, n: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.style)+"/"+tt.want, func(t *testing.T) {
			t.Parallel()

			got, err := Format(tt.style, tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("Format(%s, %d) error = %v, want ErrOutOfRange", tt.style, tt.n, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%s, %d): %v", tt.style, tt.n, err)
			}
			if got != tt.want {
				t.Errorf("Format(%s, %d) = %q, want %q", tt.style, tt.n, got, tt.want)
			}
		})
	}
}
