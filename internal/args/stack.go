package args

import (
	"fmt"
	"slices"
)

// Invocation is a macro call whose arguments are being collected.
type Invocation struct {
	Name      string
	remaining []Descriptor
	parsed    []any
}

// Parsed returns the values collected so far.
func (inv *Invocation) Parsed() []any { return inv.parsed }

// Head returns the next expected descriptor.
func (inv *Invocation) Head() (Descriptor, bool) {
	if len(inv.remaining) == 0 {
		return Descriptor{}, false
	}
	return inv.remaining[0], true
}

// Body returns the kind of the last pending descriptor if an environment
// body can fill it.
func (inv *Invocation) Body() (Kind, bool) {
	if len(inv.remaining) == 0 {
		return "", false
	}
	last := inv.remaining[len(inv.remaining)-1]
	if last.IsBranch() || !last.Kind.IsBody() {
		return "", false
	}
	return last.Kind, true
}

// Stack holds the invocations of nested macro calls.
type Stack struct {
	frames []*Invocation
}

// Begin pushes an invocation of name with the given signature.
func (s *Stack) Begin(name string, spec Spec) *Invocation {
	inv := &Invocation{Name: name, remaining: slices.Clone(spec.Args)}
	s.frames = append(s.frames, inv)
	return inv
}

// Len returns the number of open invocations.
func (s *Stack) Len() int { return len(s.frames) }

// Top returns the innermost invocation.
func (s *Stack) Top() (*Invocation, error) {
	if len(s.frames) == 0 {
		return nil, ErrNoInvocation
	}
	return s.frames[len(s.frames)-1], nil
}

// NextArg consumes the head descriptor if it has kind k.
func (s *Stack) NextArg(k Kind) bool {
	inv, err := s.Top()
	if err != nil {
		return false
	}
	if h, ok := inv.Head(); ok && !h.IsBranch() && h.Kind == k {
		inv.remaining = inv.remaining[1:]
		return true
	}
	return false
}

// SelectBranch resolves a branch at the head using the next delimiter:
// '[' chooses the alternative starting with an optional argument, '{' one
// starting with a mandatory argument. It reports false if the head is not
// a branch.
func (s *Stack) SelectBranch(lookahead byte) (bool, error) {
	inv, err := s.Top()
	if err != nil {
		return false, err
	}
	h, ok := inv.Head()
	if !ok || !h.IsBranch() {
		return false, nil
	}
	for _, b := range h.Branches {
		first := b[0]
		opt := !first.IsBranch() && first.Kind.Optional()
		if (lookahead == '[' && opt) || (lookahead == '{' && !opt) {
			inv.remaining = append(slices.Clone(b), inv.remaining[1:]...)
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: %s at %q", ErrNoMatchingBranch, inv.Name, lookahead)
}

// AddParsed appends a value to the innermost invocation.
func (s *Stack) AddParsed(v any) error {
	inv, err := s.Top()
	if err != nil {
		return err
	}
	inv.parsed = append(inv.parsed, v)
	return nil
}

// End pops the innermost invocation. Descriptors still pending are an
// error.
func (s *Stack) End() (*Invocation, error) {
	inv, err := s.Top()
	if err != nil {
		return nil, err
	}
	s.frames = s.frames[:len(s.frames)-1]
	if len(inv.remaining) > 0 {
		return inv, fmt.Errorf("%w: %s expects %s", ErrUnconsumedArguments, inv.Name, inv.remaining[0])
	}
	return inv, nil
}

// Accept advances the innermost invocation to the slot for an argument of
// kind k opened with delim, and consumes that slot. Branches are resolved
// by delim, omitted optional slots are filled with their zero value and
// pre is called whenever an Exec slot is passed.
func (s *Stack) Accept(k Kind, delim byte, pre func() error) error {
	inv, err := s.Top()
	if err != nil {
		return err
	}
	if delim == 0 {
		delim = k.Delim()
	}
	for {
		h, ok := inv.Head()
		switch {
		case !ok:
			return fmt.Errorf("%w: %s takes no further %s argument", ErrUnconsumedArguments, inv.Name, k)
		case h.IsBranch():
			if _, err := s.SelectBranch(delim); err != nil {
				return err
			}
		case h.Kind == k:
			inv.remaining = inv.remaining[1:]
			return nil
		case h.Kind == Exec:
			inv.remaining = inv.remaining[1:]
			if err := runPre(pre); err != nil {
				return err
			}
		case h.Kind == IgnoreSpace:
			inv.remaining = inv.remaining[1:]
		case h.Kind.Optional():
			inv.remaining = inv.remaining[1:]
			inv.parsed = append(inv.parsed, h.Kind.Zero())
		default:
			return fmt.Errorf("%w: %s expects %s, got %s", ErrArgumentMismatch, inv.Name, h.Kind, k)
		}
	}
}

// Offer accepts a complete argument value in one step.
func (s *Stack) Offer(k Kind, delim byte, v any, pre func() error) error {
	if err := s.Accept(k, delim, pre); err != nil {
		return err
	}
	return s.AddParsed(v)
}

// Finish fills trailing optional slots, runs a pending Exec slot and pops
// the invocation. A mandatory slot left over is an error.
func (s *Stack) Finish(pre func() error) ([]any, error) {
	inv, err := s.Top()
	if err != nil {
		return nil, err
	}
	for {
		h, ok := inv.Head()
		if !ok || h.IsBranch() {
			break
		}
		switch {
		case h.Kind == Exec:
			inv.remaining = inv.remaining[1:]
			if err := runPre(pre); err != nil {
				s.frames = s.frames[:len(s.frames)-1]
				return nil, err
			}
			continue
		case h.Kind == IgnoreSpace:
			inv.remaining = inv.remaining[1:]
			continue
		case h.Kind.Optional():
			inv.remaining = inv.remaining[1:]
			inv.parsed = append(inv.parsed, h.Kind.Zero())
			continue
		}
		break
	}
	inv, err = s.End()
	if err != nil {
		return nil, err
	}
	return inv.parsed, nil
}

func runPre(pre func() error) error {
	if pre == nil {
		return nil
	}
	return pre()
}
