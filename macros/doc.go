// SPDX-License-Identifier: MIT

// Package macros provides the composable building blocks of a PK/PD model:
// compartment topology, pharmacokinetic processes, dosing and
// pharmacodynamic effect expressions.
//
// Every macro runs as exactly one model.Apply transaction. Either all of
// its parameters, expressions, observables, rules and initial conditions
// are committed, or none are.
//
// Quantities:
//
//	model.Lit(x)        literal; a parameter is created under a derived name
//	*model.Parameter    an already registered, tunable parameter
//
// Derived names embed the drug and compartment, so the same macro can be
// applied to many compartments of one model:
//
//	Eliminate      k_eliminate_<drug>_<comp>, rule eliminate_<drug>_<comp>
//	EliminateMM    Vmax_, Km_, amt_, k_expr_<drug>_<comp>, rule eliminate_mm_
//	Clearance      CL_, k_CL_expr_<drug>_<comp>, rule clearance_<drug>_<comp>
//	Distribute     kf_/kr_distribute_<drug>_<c1>_to_<c2>, rule distribute_...
//	Transfer       k_transfer_<drug>_<c1>_to_<c2>, rule transfer_...
//	DoseBolus      dose_, expr_<drug>_<comp>_0, initial on drug@comp
//	DoseInfusion   k_infusion_ (or dose_infusion_), infusion_expr_, rule infusion_
//	DoseAbsorbed   species depot_<drug>_<comp>, dose_, ka_, F_, depot_<drug>_<comp>_0,
//	               rule absorb_<drug>_<comp>
//	Emax           Emax_, EC50_, conc_, Emax_expr_<drug>_<comp>
//	SigmoidalEmax  Emax_, EC50_, n_, conc_, SigmoidalEmax_expr_<drug>_<comp>
//	LinearEffect   slope_, intercept_, conc_, Linear_expr_<drug>_<comp>
//	LogLinearEffect slope_, intercept_, conc_, LogLinear_expr_<drug>_<comp>
//	FixedEffect    Efixed_, Cthreshold_, conc_, Fixed_expr_<drug>_<comp>
//
// Rate semantics (see odesys): a rule's flux is k times the reactant's
// amount, so a first-order elimination on a compartment of concentration
// C decays as C0·exp(-k·t) and distribution conserves total amount.
//
// Bioavailability is applied once, to the depot's initial amount
// (F·dose). A second DoseAbsorbed on the same drug and compartment is
// rejected with model.ErrInitialConflict rather than silently adding to
// the depot.
//
// Errors follow the model package: invalid numbers and nil arguments wrap
// model.ErrInvalidArgument, name clashes are model.ErrDuplicateName,
// repeated dosing is model.ErrInitialConflict and references to entities
// of another model are model.ErrUnknownComponent.
package macros
