// Package config reads problem descriptions: the element mesh, the order and
// quadrature of the expansion, and the field to analyze.
package config

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element"
	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/elementlist"
	"github.com/notargets/HPKernel/utils"
	"gopkg.in/yaml.v2"
)

// Problem is the top level of a YAML problem description:
//
//	lzero: false
//	lmax: 4
//	field: "x*y"
//	elements:
//	  - shape: tri
//	    verts: [[0, 0], [1, 0], [0, 1]]
type Problem struct {
	// LZero selects quadrature weights that absorb the collapse factor.
	// It has no default and must be given.
	LZero *bool `yaml:"lzero"`
	Lmax  int   `yaml:"lmax"`

	// Quadrature overrides applied to every element, zero keeps the default.
	Qa int `yaml:"qa"`
	Qb int `yaml:"qb"`
	Qc int `yaml:"qc"`

	Nz        int     `yaml:"nz"`
	Verbose   bool    `yaml:"verbose"`
	Field     string  `yaml:"field"`
	Tolerance float64 `yaml:"tol"`

	Elements []Element `yaml:"elements"`
}

// Element describes one mesh cell.
type Element struct {
	Shape string      `yaml:"shape"`
	Lmax  int         `yaml:"lmax"` // overrides Problem.Lmax when set
	Verts [][]float64 `yaml:"verts"`
	Curve string      `yaml:"curve"` // displacement [dx, dy, dz] as a function of x, y, z
}

// Load reads and checks the problem in filename.
func Load(filename string) (p *Problem, err error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if p, err = Parse(bs); err != nil {
		return nil, chk.Err("%s: %w", filename, err)
	}
	return
}

// Parse decodes and checks a YAML problem description.
func Parse(bs []byte) (p *Problem, err error) {
	p = &Problem{}
	if err = yaml.UnmarshalStrict(bs, p); err != nil {
		return nil, err
	}
	if err = p.check(); err != nil {
		return nil, err
	}
	return
}

func (p *Problem) check() error {
	if p.LZero == nil {
		return chk.Err("lzero must be set to true or false")
	}
	if p.Nz == 0 {
		p.Nz = 1
	}
	if p.Tolerance == 0 {
		p.Tolerance = 1.e-9
	}
	if p.Nz < 0 || p.Tolerance < 0 {
		return chk.Err("nz=%d and tol=%g must not be negative", p.Nz, p.Tolerance)
	}
	if p.Qa < 0 || p.Qb < 0 || p.Qc < 0 {
		return chk.Err("quadrature overrides qa=%d qb=%d qc=%d must not be negative", p.Qa, p.Qb, p.Qc)
	}
	if len(p.Elements) == 0 {
		return chk.Err("no elements given")
	}
	for i, e := range p.Elements {
		if _, err := utils.ParseGeometry(e.Shape); err != nil {
			return chk.Err("element %d: %w", i, err)
		}
		if lmax := p.order(e); lmax < 2 {
			return chk.Err("element %d: lmax=%d must be at least 2", i, lmax)
		}
	}
	return nil
}

func (p *Problem) order(e Element) int {
	if e.Lmax != 0 {
		return e.Lmax
	}
	return p.Lmax
}

// NewCache creates the operator cache the problem asks for.
func (p *Problem) NewCache() (c *refops.Cache) {
	c = refops.NewCache(*p.LZero)
	c.Verbose = p.Verbose
	return
}

// Build creates the elements and packs them into a list holding field u.
// Curve expressions are compiled with CompileCurve.
func (p *Problem) Build(cache *refops.Cache) (l *elementlist.List, err error) {
	elems := make([]element.Element, len(p.Elements))
	for i, cell := range p.Elements {
		shape, err := utils.ParseGeometry(cell.Shape)
		if err != nil {
			return nil, err
		}
		opt := element.Options{
			ID:    i,
			Field: 'u',
			Lmax:  p.order(cell),
			Qa:    p.Qa,
			Qb:    p.Qb,
			Qc:    p.Qc,
			Verts: cell.Verts,
		}
		if cell.Curve != "" {
			if opt.Curve, err = CompileCurve(cell.Curve); err != nil {
				return nil, chk.Err("element %d: %w", i, err)
			}
		}
		if elems[i], err = element.New(cache, shape, opt); err != nil {
			return nil, err
		}
	}
	if l, err = elementlist.New(elems, p.Nz); err != nil {
		return nil, err
	}
	if _, err = l.Connect(p.Tolerance); err != nil {
		return nil, err
	}
	return
}
