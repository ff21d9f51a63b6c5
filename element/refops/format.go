package refops

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrices returns the named reference matrices of an operator set, suffixed
// with the shape name. Unused directions are omitted.
func (o *Operators) Matrices() (refMats map[string]mat.Matrix) {
	sn := o.Shape.String()
	refMats = map[string]mat.Matrix{
		"Da_" + sn: o.Da,
		"Db_" + sn: o.Db,
	}
	if o.Dc != nil {
		refMats["Dc_"+sn] = o.Dc
	}
	return
}

// Matrices returns the factor tables of a basis, and the derivative tables
// once they exist.
func (b *Basis) Matrices() (refMats map[string]mat.Matrix) {
	sn := fmt.Sprintf("%s%d", b.Shape, b.Lmax)
	refMats = map[string]mat.Matrix{
		"A_" + sn: b.TabA,
		"B_" + sn: b.TabB,
	}
	if b.Shape.Dims() == 3 {
		refMats["C_"+sn] = b.TabC
	}
	if b.DTabA != nil {
		refMats["dA_"+sn] = b.DTabA
		refMats["dB_"+sn] = b.DTabB
		if b.Shape.Dims() == 3 {
			refMats["dC_"+sn] = b.DTabC
		}
	}
	return
}

// FormatMatrices renders every matrix with FormatMatrix, sorted by name.
func FormatMatrices(refMats map[string]mat.Matrix) string {
	names := make([]string, 0, len(refMats))
	for name := range refMats {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(FormatMatrix(name, refMats[name]))
	}
	return sb.String()
}

// FormatMatrix writes a matrix as a static C array initializer.
func FormatMatrix(name string, m mat.Matrix) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("const double %s[%d][%d] = {\n", name, rows, cols))
	for i := 0; i < rows; i++ {
		sb.WriteString("    {")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%.15e", m.At(i, j)))
		}
		sb.WriteString("}")
		if i < rows-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("};\n\n")

	return sb.String()
}
