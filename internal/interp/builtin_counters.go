package interp

import (
	"math"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/counter"
)

// numeral prints the value of a counter in a fixed style.
func numeral(style counter.Style) builtin {
	return builtin{"H i", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
		n, err := i.counters.Get(ArgString(a, 0))
		if err != nil {
			return nil, err
		}
		s, err := counter.Format(style, n)
		if err != nil {
			return nil, err
		}
		return nodes(i.b.Text(s)), nil
	})}
}

// counterValue returns the second argument of name as a whole number.
func counterValue(name string, a []any) (int, error) {
	n, _ := ArgNumber(a, 1)
	if n != math.Trunc(n) {
		return 0, invalid(name, "counter value %g is not an integer", n)
	}
	return int(n), nil
}

func counterMacros() builtinSet {
	return builtinSet{
		"newcounter": {"HV i i?", do(func(i *Interpreter, a []any) error {
			return i.NewCounter(ArgString(a, 0), ArgString(a, 1))
		})},
		"stepcounter": {"HV i", do(func(i *Interpreter, a []any) error {
			return i.counters.Step(ArgString(a, 0))
		})},
		"addtocounter": {"HV i n", do(func(i *Interpreter, a []any) error {
			n, err := counterValue("addtocounter", a)
			if err != nil {
				return err
			}
			return i.counters.Add(ArgString(a, 0), n)
		})},
		"setcounter": {"HV i n", do(func(i *Interpreter, a []any) error {
			n, err := counterValue("setcounter", a)
			if err != nil {
				return err
			}
			return i.counters.Set(ArgString(a, 0), n)
		})},
		"refstepcounter": {"H i", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			c := ArgString(a, 0)
			if err := i.counters.Step(c); err != nil {
				return nil, err
			}
			anchor, err := i.RefCounter(c, "")
			if err != nil {
				return nil, err
			}
			return nodes(anchor), nil
		})},

		"arabic":   numeral(counter.Arabic),
		"roman":    numeral(counter.Roman),
		"Roman":    numeral(counter.RomanUpper),
		"alph":     numeral(counter.Alph),
		"Alph":     numeral(counter.AlphUpper),
		"fnsymbol": numeral(counter.FnSymbol),

		"newlength": {"HV m", do(func(i *Interpreter, a []any) error {
			return i.scope.NewLength(ArgString(a, 0))
		})},
		"setlength": {"HV m l", do(func(i *Interpreter, a []any) error {
			l, _ := ArgLength(a, 1)
			return i.scope.SetLength(ArgString(a, 0), l)
		})},
		"addtolength": {"HV m l", do(func(i *Interpreter, a []any) error {
			name := ArgString(a, 0)
			cur, err := i.scope.Length(name)
			if err != nil {
				return err
			}
			l, _ := ArgLength(a, 1)
			sum, err := cur.Add(l)
			if err != nil {
				return err
			}
			return i.scope.SetLength(name, sum)
		})},
	}
}
