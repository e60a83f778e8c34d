// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

// Build assembles the model declared by cfg after applying opts.
// Configuration errors wrap ErrInvalidConfig; any error raised by a macro
// is returned wrapped with the failing stage. No partial model is
// returned on error.
func Build(cfg Config, opts ...Option) (*model.Model, error) {
	s := newSettings(cfg, opts)
	cfg, err := s.cfg.normalize()
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"model":        cfg.Name,
		"compartments": cfg.Compartments,
		"route":        cfg.Route.Key(),
	}
	if cfg.PD != nil {
		fields["pd_model"] = cfg.PD.Key()
	}
	log := s.log.WithFields(fields)

	m := model.New(cfg.Name)
	stage := func(name string, err error) error {
		if err == nil {
			log.WithField("stage", name).Debug("Stage assembled")
			return nil
		}
		log.WithField("stage", name).WithError(err).Warn("Failed to assemble stage")
		return fmt.Errorf("standard: %s: %w", name, err)
	}

	topo, err := buildTopology(m, cfg)
	if err := stage("topology", err); err != nil {
		return nil, err
	}
	central := topo.Central

	drug, err := macros.DrugSpecies(m, cfg.Drug)
	if err := stage("species", err); err != nil {
		return nil, err
	}

	dose, err := m.AddParameter("dose", cfg.Dose)
	if err == nil {
		err = cfg.Route.apply(m, drug, central, dose)
	}
	if err := stage("dosing", err); err != nil {
		return nil, err
	}

	if cfg.Clearance > 0 {
		var cl *model.Parameter
		cl, err = m.AddParameter("CL", cfg.Clearance)
		if err == nil {
			_, err = macros.Clearance(m, drug, central, cl)
		}
		if err := stage("clearance", err); err != nil {
			return nil, err
		}
	}

	for i, peripheral := range topo.Compartments()[1:] {
		p := cfg.Distribution[i]
		_, err = macros.Distribute(m, drug, central, peripheral, model.Lit(p.Out), model.Lit(p.Back))
		if err := stage("distribution", err); err != nil {
			return nil, err
		}
	}

	if cfg.PD != nil {
		_, err = cfg.PD.apply(m, drug, central)
		if err := stage("pd", err); err != nil {
			return nil, err
		}
	}

	log.WithField("components", len(m.Names())).Info("Assembled standard model")
	return m, nil
}

func buildTopology(m *model.Model, cfg Config) (macros.Topology, error) {
	names := volumeNames(cfg.Compartments)
	sizes := make([]model.Quantity, len(names))
	for i, n := range names {
		p, err := m.AddParameter(n, cfg.Volumes[i])
		if err != nil {
			return macros.Topology{}, err
		}
		sizes[i] = p
	}
	switch len(sizes) {
	case 1:
		c, err := macros.OneCompartment(m, sizes[0])
		return macros.Topology{Central: c}, err
	case 2:
		return macros.TwoCompartments(m, sizes[0], sizes[1])
	default:
		return macros.ThreeCompartments(m, sizes[0], sizes[1], sizes[2])
	}
}

// OneCompartmentModel builds a one compartment model dosed with dose.
// Defaults: IV bolus, Vd = 1, CL = 0.5, no PD.
func OneCompartmentModel(dose float64, opts ...Option) (*model.Model, error) {
	return Build(DefaultConfig(1, dose), opts...)
}

// TwoCompartmentModel builds a two compartment model. Defaults: IV bolus,
// Vc = Vp = 1, CL = 0.5, k12 = 0.1, k21 = 0.01, no PD.
func TwoCompartmentModel(dose float64, opts ...Option) (*model.Model, error) {
	return Build(DefaultConfig(2, dose), opts...)
}

// ThreeCompartmentModel builds a three compartment model. Defaults as
// TwoCompartmentModel plus k13 = 1e-3, k31 = 1e-4 to the deep peripheral
// compartment.
func ThreeCompartmentModel(dose float64, opts ...Option) (*model.Model, error) {
	return Build(DefaultConfig(3, dose), opts...)
}
