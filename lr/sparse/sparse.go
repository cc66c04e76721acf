/*
Package sparse implements a simple type for sparse integer matrices.
It is used for parser tables (LL(1) table, GOTO-table and ACTION-table),
which for realistic grammars are mostly empty.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept in row-major order for binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(-1)          // parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     cnt := M.ValueCount()          // returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Rows and columns are not bounded. Values cannot be deleted, but may be
// overwritten with the null-value. Space for null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates a new matrix for int. The argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// index finds the position of (i,j) or of the first triplet right of it.
func (m *IntMatrix) index(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
}

// Value returns the value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	k := m.index(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value
	}
	return m.nullval
}

// Has is true if a value other than NullValue is stored at (i,j).
func (m *IntMatrix) Has(i, j int) bool {
	return m.Value(i, j) != m.nullval
}

// Set a value in the matrix at position (i,j).
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	k := m.index(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		m.values[k].value = value
		return m
	}
	tnew := triplet{row: i, col: j, value: value}
	// the following 3 lines have to work for k being the right edge of values or not
	m.values = append(m.values, tnew)  // make room
	copy(m.values[k+1:], m.values[k:]) // copy remainder values one index to right
	m.values[k] = tnew                 // if not append-case: insert new triplet
	return m
}

// Each calls f for every stored value, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, value int32)) {
	for _, t := range m.values {
		if t.value != m.nullval {
			f(t.row, t.col, t.value)
		}
	}
}

// Row returns the column indices and values stored in row i, ordered by column.
func (m *IntMatrix) Row(i int) ([]int, []int32) {
	var cols []int
	var vals []int32
	for k := m.index(i, math.MinInt); k < len(m.values) && m.values[k].row == i; k++ {
		if m.values[k].value != m.nullval {
			cols = append(cols, m.values[k].col)
			vals = append(vals, m.values[k].value)
		}
	}
	return cols, vals
}

func (t triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

func (m *IntMatrix) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("IntMatrix[%d values]{", len(m.values)))
	for k, t := range m.values {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value))
	}
	sb.WriteByte('}')
	return sb.String()
}
