// SPDX-License-Identifier: MIT

package simulate

// Trajectory is a time-indexed simulation result.
//
// Names lists the states (odesys.System.StateNames) followed by the
// observables and expressions; Values[i] is the series of Names[i],
// aligned with Time.
type Trajectory struct {
	Model  string
	Time   []float64
	Names  []string
	Values [][]float64

	index map[string]int
}

func newTrajectory(model string, times []float64, names []string) *Trajectory {
	tr := &Trajectory{
		Model:  model,
		Time:   append([]float64(nil), times...),
		Names:  names,
		Values: make([][]float64, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for i, n := range names {
		tr.index[n] = i
		tr.Values[i] = make([]float64, len(times))
	}
	return tr
}

// Series returns the values of name over Time.
func (tr *Trajectory) Series(name string) ([]float64, bool) {
	i, ok := tr.index[name]
	if !ok {
		return nil, false
	}
	return tr.Values[i], true
}

// Row returns every series at time index i, in Names order.
func (tr *Trajectory) Row(i int) []float64 {
	row := make([]float64, len(tr.Values))
	for j, s := range tr.Values {
		row[j] = s[i]
	}
	return row
}

// Len returns the number of time points.
func (tr *Trajectory) Len() int { return len(tr.Time) }
