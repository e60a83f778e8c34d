package macros_test

import (
	"fmt"

	"github.com/katalvlaran/pkpd/macros"
	"github.com/katalvlaran/pkpd/model"
)

// ExampleTwoCompartments assembles a two-compartment IV bolus model by
// hand.
func ExampleTwoCompartments() {
	m := model.New("two-compartment")
	drug, _ := macros.DrugSpecies(m, "")
	top, _ := macros.TwoCompartments(m, model.Lit(10), model.Lit(20))

	_, _ = macros.DoseBolus(m, drug, top.Central, model.Lit(100))
	_, _ = macros.Clearance(m, drug, top.Central, model.Lit(0.5))
	_, _ = macros.Distribute(m, drug, top.Central, top.Peripheral, model.Lit(0.1), model.Lit(0.01))

	for _, r := range m.Rules() {
		fmt.Println(r.Name(), r)
	}
	// Output:
	// clearance_Drug_CENTRAL Drug@CENTRAL >> None
	// distribute_Drug_CENTRAL_to_PERIPHERAL Drug@CENTRAL | Drug@PERIPHERAL
}

func ExampleEmax() {
	m := model.New("pd")
	drug, _ := macros.DrugSpecies(m, "")
	central, _ := macros.OneCompartment(m, model.Lit(1))
	e, _ := macros.Emax(m, drug, central, model.Lit(1), model.Lit(10))
	fmt.Println(e.Name(), "=", e.Definition())
	// Output:
	// Emax_expr_Drug_CENTRAL = ((Emax_Drug_CENTRAL * conc_Drug_CENTRAL) / (conc_Drug_CENTRAL + EC50_Drug_CENTRAL))
}
