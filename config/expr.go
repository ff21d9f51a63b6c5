package config

import (
	"github.com/cpmech/gosl/chk"
	"github.com/dop251/goja"
	"github.com/notargets/HPKernel/element"
)

// Expressions are ECMAScript evaluated with x, y, z bound and the members of
// Math in scope, e.g. "sin(pi*x)*y" or "[0.1*y, 0, 0]". Pi is also
// available as pi.

type script struct {
	vm *goja.Runtime
	fn goja.Callable
}

func compile(name, src string) (s *script, err error) {
	wrapped := "(function(x, y, z) { var pi = Math.PI; with (Math) { return (" + src + "); } })"
	prog, err := goja.Compile(name, wrapped, false)
	if err != nil {
		return nil, chk.Err("cannot compile %s %q: %w", name, src, err)
	}
	s = &script{vm: goja.New()}
	v, err := s.vm.RunProgram(prog)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, chk.Err("%s %q is not a function", name, src)
	}
	s.fn = fn
	return
}

func (s *script) call(x, y, z float64) (goja.Value, error) {
	return s.fn(goja.Undefined(), s.vm.ToValue(x), s.vm.ToValue(y), s.vm.ToValue(z))
}

// Field is a scalar function of position.
type Field func(x, y, z float64) float64

// CompileField turns an expression into a Field. The expression is tried
// once at the origin so that reference errors surface here.
func CompileField(src string) (Field, error) {
	s, err := compile("field", src)
	if err != nil {
		return nil, err
	}
	if _, err = s.number(0, 0, 0); err != nil {
		return nil, err
	}
	return func(x, y, z float64) float64 {
		v, err := s.number(x, y, z)
		if err != nil {
			chk.Panic("field %q at (%g,%g,%g): %v", src, x, y, z, err)
		}
		return v
	}, nil
}

func (s *script) number(x, y, z float64) (float64, error) {
	v, err := s.call(x, y, z)
	if err != nil {
		return 0, err
	}
	return v.ToFloat(), nil
}

// CompileCurve turns an expression returning [dx, dy, dz] into an element
// Curve. Missing trailing components are zero.
func CompileCurve(src string) (element.Curve, error) {
	s, err := compile("curve", src)
	if err != nil {
		return nil, err
	}
	if _, err = s.vector(0, 0, 0); err != nil {
		return nil, err
	}
	return func(x, y, z float64) (dx, dy, dz float64) {
		d, err := s.vector(x, y, z)
		if err != nil {
			chk.Panic("curve %q at (%g,%g,%g): %v", src, x, y, z, err)
		}
		return d[0], d[1], d[2]
	}, nil
}

func (s *script) vector(x, y, z float64) (d [3]float64, err error) {
	v, err := s.call(x, y, z)
	if err != nil {
		return
	}
	list, ok := v.Export().([]interface{})
	if !ok || len(list) > 3 {
		return d, chk.Err("curve must return an array of up to three numbers, got %v", v)
	}
	for i, c := range list {
		switch n := c.(type) {
		case int64:
			d[i] = float64(n)
		case float64:
			d[i] = n
		default:
			return d, chk.Err("curve component %d is %v, not a number", i, c)
		}
	}
	return
}
