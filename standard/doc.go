// SPDX-License-Identifier: MIT

// Package standard assembles ready-made one, two and three compartment
// PK(/PD) models from a declarative Config.
//
// Build applies the macros in a fixed order:
//
//  1. compartments (volumes as named parameters Vd, or Vc/Vp/Vdp)
//  2. the drug species
//  3. the dosing macro selected by Config.Route, dosing the parameter "dose"
//  4. clearance on the central compartment (parameter "CL", skipped when
//     zero) and distribution between the central and every peripheral
//     compartment
//  5. at most one PD macro selected by Config.PD
//
// Routes and PD models are sum types: each variant carries exactly the
// numbers it needs and is validated before the model is touched.
// DoseRouteFromKey and PDModelFromKey translate string keys with
// parameter maps, as found in configuration files, into variants.
//
//	route keys: iv-bolus, iv-infusion, oral, subcutaneous
//	PD keys:    emax, sigmoidal-emax, linear, log-linear, fixed
//
// Unknown keys, missing and unexpected parameters are configuration
// errors wrapping model.ErrInvalidArgument.
package standard
