// SPDX-License-Identifier: MIT

package macros

import (
	"github.com/katalvlaran/pkpd/model"
)

// Topology groups the compartments created by TwoCompartments and
// ThreeCompartments. Unused slots are nil.
type Topology struct {
	Central        *model.Compartment
	Peripheral     *model.Compartment
	DeepPeripheral *model.Compartment
}

// Compartments returns the non-nil compartments, central first.
func (t Topology) Compartments() []*model.Compartment {
	out := make([]*model.Compartment, 0, 3)
	for _, c := range []*model.Compartment{t.Central, t.Peripheral, t.DeepPeripheral} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// DrugSpecies creates the drug species. An empty name means DefaultDrug.
func DrugSpecies(m *model.Model, name string) (*model.Species, error) {
	if name == "" {
		name = DefaultDrug
	}
	var sp *model.Species
	_, err := apply(m, "DrugSpecies", func(tx *model.Tx) (err error) {
		sp, err = tx.AddSpecies(name)
		return err
	})
	return sp, err
}

// OneCompartment creates the central compartment.
func OneCompartment(m *model.Model, size model.Quantity, opts ...TopologyOption) (*model.Compartment, error) {
	t, err := compartments(m, "OneCompartment", []model.Quantity{size}, opts)
	return t.Central, err
}

// TwoCompartments creates the central and peripheral compartments.
func TwoCompartments(m *model.Model, central, peripheral model.Quantity, opts ...TopologyOption) (Topology, error) {
	return compartments(m, "TwoCompartments", []model.Quantity{central, peripheral}, opts)
}

// ThreeCompartments creates central, peripheral and deep peripheral
// compartments.
func ThreeCompartments(m *model.Model, central, peripheral, deep model.Quantity, opts ...TopologyOption) (Topology, error) {
	return compartments(m, "ThreeCompartments", []model.Quantity{central, peripheral, deep}, opts)
}

func compartments(m *model.Model, op string, sizes []model.Quantity, opts []TopologyOption) (Topology, error) {
	cfg := newTopologyConfig(opts)
	created := make([]*model.Compartment, len(sizes))
	_, err := apply(m, op, func(tx *model.Tx) error {
		for i, size := range sizes {
			if size == nil {
				return invalidf("size of %s: %v", cfg.names[i], errNoQuantity)
			}
			c, err := tx.AddCompartment(cfg.names[i], size)
			if err != nil {
				return err
			}
			created[i] = c
		}
		return nil
	})
	if err != nil {
		return Topology{}, err
	}
	var t Topology
	t.Central = created[0]
	if len(created) > 1 {
		t.Peripheral = created[1]
	}
	if len(created) > 2 {
		t.DeepPeripheral = created[2]
	}
	return t, nil
}
