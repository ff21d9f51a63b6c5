package refops

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cpmech/gosl/io"
	"github.com/notargets/HPKernel/utils"
)

// Cache memoizes reference operators and modal bases. Entries are built on
// first request under the write lock and never modified afterwards, so the
// returned pointers may be shared freely between elements and goroutines.
type Cache struct {
	LZero   bool
	Verbose bool

	mu     sync.RWMutex
	ops    map[Key]*Operators
	bases  map[BasisKey]*Basis
	builds struct{ ops, bases, derivs int }
}

// NewCache creates an empty cache. lzero selects whether collapsed directions
// carry their Jacobian factor in the quadrature weights pointwise rather
// than through the Jacobi weight of the rule; it applies to every entry.
func NewCache(lzero bool) *Cache {
	return &Cache{
		LZero: lzero,
		ops:   make(map[Key]*Operators),
		bases: make(map[BasisKey]*Basis),
	}
}

// GetD returns the operators of shape for the given point counts. Counts of
// unused directions must be zero.
func (c *Cache) GetD(shape utils.GeometryType, qa, qb, qc int) *Operators {
	key := Key{Shape: shape, Qa: qa, Qb: qb, Qc: qc}
	c.mu.RLock()
	o, ok := c.ops[key]
	c.mu.RUnlock()
	if ok {
		return o
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getD(key)
}

// getD requires the write lock.
func (c *Cache) getD(key Key) *Operators {
	if o, ok := c.ops[key]; ok {
		return o
	}
	if c.Verbose {
		io.Pf("refops: building %v operators qa=%d qb=%d qc=%d lzero=%v\n",
			key.Shape, key.Qa, key.Qb, key.Qc, c.LZero)
	}
	o := newOperators(key, c.LZero)
	c.ops[key] = o
	c.builds.ops++
	return o
}

// GetBasis returns the modal basis of order lmax sampled on the given points.
func (c *Cache) GetBasis(shape utils.GeometryType, lmax, qa, qb, qc int) *Basis {
	key := BasisKey{Key: Key{Shape: shape, Qa: qa, Qb: qb, Qc: qc}, Lmax: lmax}
	c.mu.RLock()
	b, ok := c.bases[key]
	c.mu.RUnlock()
	if ok {
		return b
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getBasis(key)
}

func (c *Cache) getBasis(key BasisKey) *Basis {
	if b, ok := c.bases[key]; ok {
		return b
	}
	validateKey(key.Key)
	if c.Verbose {
		io.Pf("refops: building %v basis lmax=%d qa=%d qb=%d qc=%d\n",
			key.Shape, key.Lmax, key.Qa, key.Qb, key.Qc)
	}
	b := newBasis(c.getD(key.Key), key.Lmax)
	c.bases[key] = b
	c.builds.bases++
	return b
}

// DerBasis returns the same basis as GetBasis with its derivative tables
// filled in.
func (c *Cache) DerBasis(shape utils.GeometryType, lmax, qa, qb, qc int) *Basis {
	key := BasisKey{Key: Key{Shape: shape, Qa: qa, Qb: qb, Qc: qc}, Lmax: lmax}
	c.mu.RLock()
	b, ok := c.bases[key]
	ready := ok && b.DTabA != nil
	c.mu.RUnlock()
	if ready {
		return b
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	b = c.getBasis(key)
	if b.DTabA == nil {
		if c.Verbose {
			io.Pf("refops: differentiating %v basis lmax=%d\n", key.Shape, key.Lmax)
		}
		b.buildDerivatives()
		c.builds.derivs++
	}
	return b
}

// Builds reports how many operator sets, bases and derivative tables have
// been constructed.
func (c *Cache) Builds() (ops, bases, derivs int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builds.ops, c.builds.bases, c.builds.derivs
}

// String lists the cached entries in a stable order.
func (c *Cache) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var lines []string
	for k := range c.ops {
		lines = append(lines, fmt.Sprintf("D     %-5v qa=%d qb=%d qc=%d", k.Shape, k.Qa, k.Qb, k.Qc))
	}
	for k, b := range c.bases {
		lines = append(lines, fmt.Sprintf("Basis %-5v qa=%d qb=%d qc=%d lmax=%d nmodes=%d",
			k.Shape, k.Qa, k.Qb, k.Qc, k.Lmax, b.Nmodes()))
	}
	sort.Strings(lines)
	var sb strings.Builder
	fmt.Fprintf(&sb, "refops cache lzero=%v: %d operator sets, %d bases\n",
		c.LZero, len(c.ops), len(c.bases))
	for _, l := range lines {
		sb.WriteString("  " + l + "\n")
	}
	return sb.String()
}
