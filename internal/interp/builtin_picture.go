package interp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/alnah/go-tex2html/internal/dom"
	"github.com/alnah/go-tex2html/internal/geometry"
	"github.com/alnah/go-tex2html/internal/length"
)

// pen returns the stroke settings of the current line thickness.
func (i *Interpreter) pen() (geometry.Pen, error) {
	w, err := i.scope.Length("@wholewidth")
	if err != nil {
		return geometry.Pen{}, err
	}
	px, err := w.Px()
	if err != nil {
		return geometry.Pen{}, err
	}
	return geometry.Pen{Thickness: px, Format: i.b.Format()}, nil
}

// draw turns a drawing into a picture object placed at the current point.
func (i *Interpreter) draw(build func(p geometry.Pen) (geometry.Drawing, error)) ([]*html.Node, error) {
	p, err := i.pen()
	if err != nil {
		return nil, err
	}
	d, err := build(p)
	if err != nil {
		return nil, err
	}
	return nodes(i.b.Element("span", dom.ClassPicture, i.b.Drawing(d, p))), nil
}

// points converts vectors to pixel coordinates.
func points(vs ...geometry.Vector) ([]geometry.Point, error) {
	out := make([]geometry.Point, len(vs))
	for j, v := range vs {
		p, err := v.Point()
		if err != nil {
			return nil, err
		}
		out[j] = p
	}
	return out, nil
}

// vectorArgs collects the vector arguments from n on.
func vectorArgs(a []any, n int) []geometry.Vector {
	var out []geometry.Vector
	for j := n; j < len(a); j++ {
		if v, ok := ArgVector(a, j); ok {
			out = append(out, v)
		}
	}
	return out
}

// slopeSegment converts \line-style slope and length arguments to the end
// point of the segment.
func slopeSegment(a []any) (geometry.Point, error) {
	slope, _ := ArgVector(a, 0)
	l, _ := ArgLength(a, 1)
	ps, err := points(slope)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("%w: relative units not allowed for slope", geometry.ErrIllegalGeometry)
	}
	seg, err := geometry.SlopeToSegment(ps[0].X, ps[0].Y, l)
	if err != nil {
		return geometry.Point{}, err
	}
	end, err := seg.Point()
	if err != nil {
		return geometry.Point{}, err
	}
	return end, nil
}

func (i *Interpreter) arrow(a, b geometry.Point) ([]*html.Node, error) {
	id := fmt.Sprintf("arrow-%d", i.NextID())
	return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
		return geometry.Arrow(a, b, p, id)
	})
}

// put places obj at v relative to the picture origin. A strut raises the
// line to the object's height.
func put(i *Interpreter, v geometry.Vector, obj *html.Node) ([]*html.Node, error) {
	f := i.b.Format()
	wrapper := i.b.Element("span", "put-obj", obj)
	pos, err := v.Y.Cmp(length.Zero)
	if err != nil {
		return nil, err
	}
	var strut *html.Node
	if pos >= 0 {
		dom.SetAttr(wrapper, "style", "left:"+f.Format(v.X))
		if pos > 0 {
			strut = i.b.Element("span", "strut")
			dom.SetAttr(strut, "style", "height:"+f.Format(v.Y))
		}
	} else {
		dom.SetAttr(wrapper, "style", "left:"+f.Format(v.X)+";bottom:"+f.Format(v.Y))
	}
	pic := i.b.Element("span", dom.ClassPicture, wrapper)
	if strut != nil {
		pic.AppendChild(strut)
	}
	return nodes(i.b.Element("span", "hbox rlap", pic)), nil
}

// setWholeWidth changes the line thickness of the current group.
func (i *Interpreter) setWholeWidth(l length.Length) error {
	return i.scope.SetLength("@wholewidth", l)
}

func pictureMacros() builtinSet {
	return builtinSet{
		"picture": {"H v v? h", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			size, _ := ArgVector(a, 0)
			var offset *geometry.Vector
			if o, ok := ArgVector(a, 1); ok {
				offset = &o
			}
			return nodes(i.b.Picture(size.X, size.Y, offset, ArgNode(a, 2))), nil
		})},

		"thinlines": {"HV", do(func(i *Interpreter, _ []any) error {
			return i.setWholeWidth(length.Pt(0.4))
		})},
		"thicklines": {"HV", do(func(i *Interpreter, _ []any) error {
			return i.setWholeWidth(length.Pt(0.8))
		})},
		"linethickness": {"HV l", do(func(i *Interpreter, a []any) error {
			l, _ := ArgLength(a, 0)
			if l.IsRelative() {
				return invalid("linethickness", "relative units are not supported")
			}
			return i.setWholeWidth(l)
		})},
		"arrowlength": {"HV l", do(func(i *Interpreter, a []any) error {
			l, _ := ArgLength(a, 0)
			return i.scope.SetLength("@arrowlength", l)
		})},

		"frame": {"H hg", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			w, err := i.scope.Length("@wholewidth")
			if err != nil {
				return nil, err
			}
			el := i.b.Element("span", "hbox pframe", ArgNode(a, 0))
			dom.SetAttr(el, "style", "border-width:"+i.b.Format().Format(w))
			return nodes(el), nil
		})},
		"put": {"H v g is", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			v, _ := ArgVector(a, 0)
			return put(i, v, ArgNode(a, 1))
		})},
		"multiput": {"H v v n g", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			v, _ := ArgVector(a, 0)
			dv, _ := ArgVector(a, 1)
			n, _ := ArgNumber(a, 2)
			obj := ArgNode(a, 3)
			var out []*html.Node
			for k := 0; k < int(n); k++ {
				at, err := v.Add(dv.Mul(float64(k)))
				if err != nil {
					return nil, err
				}
				ns, err := put(i, at, dom.Clone(obj))
				if err != nil {
					return nil, err
				}
				out = append(out, ns...)
			}
			return out, nil
		})},

		"qbezier": {"H n? v v v", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			n, _ := ArgNumber(a, 0)
			ps, err := points(vectorArgs(a, 1)...)
			if err != nil {
				return nil, err
			}
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.QBezier(ps[0], ps[1], ps[2], int(n), p), nil
			})
		})},
		"cbezier": {"H n? v v v v", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			n, _ := ArgNumber(a, 0)
			ps, err := points(vectorArgs(a, 1)...)
			if err != nil {
				return nil, err
			}
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.CBezier(ps[0], ps[1], ps[2], ps[3], int(n), p), nil
			})
		})},
		"circle": {"H s cl", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			d, _ := ArgLength(a, 1)
			px, err := d.Abs().Px()
			if err != nil {
				return nil, err
			}
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.Circle(px, ArgBool(a, 0), p), nil
			})
		})},
		"line": {"H v cl", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			end, err := slopeSegment(a)
			if err != nil {
				return nil, err
			}
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.Line(geometry.Point{}, end, p), nil
			})
		})},
		"vector": {"H v cl", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			end, err := slopeSegment(a)
			if err != nil {
				return nil, err
			}
			return i.arrow(geometry.Point{}, end)
		})},
		"Line": {"H v v", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			ps, err := points(vectorArgs(a, 0)...)
			if err != nil {
				return nil, err
			}
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.Line(ps[0], ps[1], p), nil
			})
		})},
		"Vector": {"H v v", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			ps, err := points(vectorArgs(a, 0)...)
			if err != nil {
				return nil, err
			}
			return i.arrow(ps[0], ps[1])
		})},
		"oval": {"H cl? v i?", run(func(i *Interpreter, a []any) ([]*html.Node, error) {
			maxrad, ok := ArgLength(a, 0)
			if !ok {
				maxrad = geometry.DefaultMaxOvalRadius
			}
			size, _ := ArgVector(a, 1)
			ps, err := points(size)
			if err != nil {
				return nil, err
			}
			r, err := maxrad.Px()
			if err != nil {
				return nil, err
			}
			id := fmt.Sprintf("oval-%d", i.NextID())
			return i.draw(func(p geometry.Pen) (geometry.Drawing, error) {
				return geometry.Oval(ps[0].X, ps[0].Y, r, ArgString(a, 2), p, id), nil
			})
		})},
	}
}
