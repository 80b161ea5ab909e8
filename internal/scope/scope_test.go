package scope

import (
	"errors"
	"testing"

	"github.com/alnah/go-tex2html/internal/length"
)

func TestEnterExitGroup(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.Set(FontWeight, "bf")

	s.EnterGroup(false)
	if got := s.Local(FontWeight); got != "" {
		t.Errorf("fresh group FontWeight = %q, want empty", got)
	}
	s.Set(FontShape, "it")
	if err := s.ExitGroup(); err != nil {
		t.Fatalf("ExitGroup: %v", err)
	}

	s.EnterGroup(true)
	if got := s.Local(FontWeight); got != "bf" {
		t.Errorf("copied group FontWeight = %q, want bf", got)
	}
	if err := s.ExitGroup(); err != nil {
		t.Fatalf("ExitGroup: %v", err)
	}

	if got := s.Local(FontShape); got != "" {
		t.Errorf("FontShape leaked out of group: %q", got)
	}
	if err := s.ExitGroup(); !errors.Is(err, ErrNoOpenGroup) {
		t.Errorf("ExitGroup on document frame error = %v, want ErrNoOpenGroup", err)
	}
}

func TestActive(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.Set(FontWeight, "bf")
	s.EnterGroup(false)
	s.EnterGroup(false)

	if got := s.Active(FontWeight); got != "bf" {
		t.Errorf("Active(FontWeight) two groups down = %q, want bf", got)
	}
	if got := s.Local(FontWeight); got != "" {
		t.Errorf("Local(FontWeight) = %q, want empty", got)
	}

	s.Set(FontWeight, "md")
	if got := s.Active(FontWeight); got != "md" {
		t.Errorf("Active(FontWeight) = %q, want the innermost md", got)
	}
	if err := s.ExitGroup(); err != nil {
		t.Fatalf("ExitGroup: %v", err)
	}
	if got := s.Active(FontWeight); got != "bf" {
		t.Errorf("Active(FontWeight) after exit = %q, want bf", got)
	}
	if got := s.Active(FontShape); got != "" {
		t.Errorf("Active(FontShape) = %q, want empty", got)
	}
}

func TestBalance(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.EnterGroup(false)

	s.StartBalanced()
	if !s.IsBalanced() {
		t.Fatal("new balance level should be balanced")
	}
	s.EnterGroup(false)
	if s.IsBalanced() {
		t.Error("open group inside level reported balanced")
	}
	if err := s.ExitGroup(); err != nil {
		t.Fatalf("ExitGroup: %v", err)
	}
	if err := s.ExitGroup(); !errors.Is(err, ErrNoOpenGroup) {
		t.Errorf("closing an outer group inside a level error = %v, want ErrNoOpenGroup", err)
	}
	if n := s.EndBalanced(); n != 0 {
		t.Errorf("EndBalanced() = %d, want 0", n)
	}

	if err := s.ExitGroup(); err != nil {
		t.Errorf("outer group should close after the level ends: %v", err)
	}
}

func TestSetFontShapeEm(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.SetFontShape("em")
	if got := s.Local(FontShape); got != "it" {
		t.Fatalf("em in upright text = %q, want it", got)
	}

	s.EnterGroup(false)
	s.SetFontShape("em")
	if got := s.Local(FontShape); got != "up" {
		t.Errorf("em in italic text = %q, want up", got)
	}
}

func TestInlineClasses(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.Set(TextDecoration, "underline")
	s.Set(FontFamily, "tt")
	s.Set(FontWeight, "bf")

	if got, want := s.InlineClasses(), "tt bf underline"; got != want {
		t.Errorf("InlineClasses() = %q, want %q", got, want)
	}
}

func TestAlignmentResetsInGroup(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.SetAlignment("center")
	s.EnterGroup(true)
	if got := s.Alignment(); got != "" {
		t.Errorf("Alignment() in group = %q, want empty", got)
	}
}

func TestLengths(t *testing.T) {
	t.Parallel()

	s := NewStack()
	if err := s.NewLength("parindent"); err != nil {
		t.Fatalf("NewLength: %v", err)
	}
	if err := s.NewLength("parindent"); !errors.Is(err, ErrDuplicateLength) {
		t.Errorf("duplicate NewLength error = %v, want ErrDuplicateLength", err)
	}
	if err := s.SetLength("nope", length.Pt(1)); !errors.Is(err, ErrNoSuchLength) {
		t.Errorf("SetLength error = %v, want ErrNoSuchLength", err)
	}

	_ = s.SetLength("parindent", length.Pt(15))
	s.EnterGroup(false)
	_ = s.SetLength("parindent", length.Pt(0))
	if err := s.ExitGroup(); err != nil {
		t.Fatal(err)
	}

	got, err := s.Length("parindent")
	if err != nil {
		t.Fatalf("Length: %v", err)
	}
	if got != length.Pt(15) {
		t.Errorf("parindent after group = %v sp, want 15pt", got.Value())
	}

	s.EnterGroup(false)
	_ = s.SetLengthGlobal("parindent", length.Pt(2))
	_ = s.ExitGroup()
	if got, _ := s.Length("parindent"); got != length.Pt(2) {
		t.Errorf("global parindent = %v sp, want 2pt", got.Value())
	}
}

func TestCurrentLabelInherited(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.SetCurrentLabel(Label{ID: "sec-1"})
	s.EnterGroup(false)
	if got := s.CurrentLabel().ID; got != "sec-1" {
		t.Errorf("CurrentLabel().ID = %q, want sec-1", got)
	}
	s.SetCurrentLabel(Label{ID: "c-2"})
	_ = s.ExitGroup()
	if got := s.CurrentLabel().ID; got != "sec-1" {
		t.Errorf("CurrentLabel().ID after group = %q, want sec-1", got)
	}
}

func TestInlineStyle(t *testing.T) {
	t.Parallel()

	s := NewStack()
	s.Set(FontWeight, "bf")
	s.Set(TextColor, "#ff0000")
	if got := s.InlineClasses(); got != "bf" {
		t.Errorf("InlineClasses() = %q, want bf", got)
	}
	if got := s.InlineStyle(); got != "color:#ff0000" {
		t.Errorf("InlineStyle() = %q, want color:#ff0000", got)
	}
	s.EnterGroup(false)
	if got := s.InlineStyle(); got != "" {
		t.Errorf("InlineStyle() in a fresh group = %q, want empty", got)
	}
}
