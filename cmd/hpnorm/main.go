// Command hpnorm evaluates a field on a spectral/hp element mesh and reports
// its norms, the norms of its gradient and the error of its modal projection.
//
// Usage:
//
//	hpnorm problem.yaml [verbose] [dump]
package main

import (
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/notargets/HPKernel/config"
	"github.com/notargets/HPKernel/element"
	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/elementlist"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".yaml", true)
	verbose := io.ArgToBool(1, false)
	dump := io.ArgToBool(2, false)
	if verbose {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"problem file", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"dump reference matrices", "dump", dump,
		))
	}

	p, err := config.Load(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}
	p.Verbose = p.Verbose || verbose
	r, err := run(p)
	if err != nil {
		chk.Panic("%v", err)
	}
	r.print()
	if dump {
		for _, g := range r.list.Groups() {
			io.Pf("%s", refops.FormatMatrices(g.Basis.Ops.Matrices()))
			io.Pf("%s", refops.FormatMatrices(g.Basis.Matrices()))
		}
	}
	if p.Verbose {
		io.Pf("%v", r.cache)
	}
}

type norms struct {
	Li, L2, H1 float64
}

type report struct {
	cache *refops.Cache
	list  *elementlist.List

	Field     norms
	Elements  []norms
	Grad      [3]norms // L2 and Li of each Cartesian derivative
	ProjError float64  // Li distance between the field and its modal projection
}

// run evaluates the field of p at the quadrature points of every element and
// computes the report.
func run(p *config.Problem) (r *report, err error) {
	if p.Field == "" {
		return nil, chk.Err("no field expression given")
	}
	f, err := config.CompileField(p.Field)
	if err != nil {
		return nil, err
	}
	r = &report{cache: p.NewCache()}
	if r.list, err = p.Build(r.cache); err != nil {
		return nil, err
	}
	l := r.list
	for _, e := range l.Elements() {
		g := e.Geometry()
		for n := range e.Phys() {
			e.Phys()[n] = f(g.X[n], g.Y[n], g.Z[n])
		}
		e.SetState(element.Physical)
	}

	if r.Field, err = listNorms(l, true); err != nil {
		return nil, err
	}
	for _, e := range l.Elements() {
		var en norms
		en.Li = e.NormLi()
		if en.L2, err = e.NormL2(); err != nil {
			return nil, err
		}
		if en.H1, err = e.NormH1(); err != nil {
			return nil, err
		}
		r.Elements = append(r.Elements, en)
	}

	d := [3]*elementlist.List{l.GenAux('x'), l.GenAux('y'), l.GenAux('z')}
	if err = l.Grad(d[0], d[1], d[2], element.DirAll); err != nil {
		return nil, err
	}
	for i := range d {
		if r.Grad[i], err = listNorms(d[i], false); err != nil {
			return nil, err
		}
	}

	proj := l.GenAux('p')
	for i, e := range l.Elements() {
		copy(proj.At(i).Phys(), e.Phys())
	}
	proj.SetState(element.Physical)
	if err = proj.TransToModal(); err != nil {
		return nil, err
	}
	proj.TransToPhys()
	for i, e := range l.Elements() {
		for n, v := range proj.At(i).Phys() {
			r.ProjError = math.Max(r.ProjError, math.Abs(v-e.Phys()[n]))
		}
	}
	return
}

func listNorms(l *elementlist.List, h1 bool) (n norms, err error) {
	n.Li = l.NormLi()
	if n.L2, err = l.NormL2(); err != nil {
		return
	}
	if h1 {
		n.H1, err = l.NormH1()
	}
	return
}

func (r *report) print() {
	io.Pf("%v", r.list)
	io.Pf("\n%8s %6s %14s %14s %14s\n", "element", "shape", "Li", "L2", "H1")
	for i, en := range r.Elements {
		e := r.list.At(i)
		io.Pf("%8d %6s %14.6e %14.6e %14.6e\n", e.ID(), e.Properties().ShortName, en.Li, en.L2, en.H1)
	}
	io.Pforan("\nfield:    Li=%.10e L2=%.10e H1=%.10e\n", r.Field.Li, r.Field.L2, r.Field.H1)
	for i, name := range []string{"du/dx", "du/dy", "du/dz"} {
		io.Pf("%-9s Li=%.10e L2=%.10e\n", name+":", r.Grad[i].Li, r.Grad[i].L2)
	}
	io.Pf("projection error Li=%.3e\n", r.ProjError)
}
