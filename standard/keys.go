// SPDX-License-Identifier: MIT

package standard

import (
	"fmt"
	"sort"
	"strings"
)

// argSpec lists the parameter names a key accepts.
type argSpec struct {
	required []string
	optional []string
}

var routeArgs = map[string]argSpec{
	"iv-bolus":     {},
	"iv-infusion":  {optional: []string{"duration"}},
	"oral":         {required: []string{"ka"}, optional: []string{"f"}},
	"subcutaneous": {required: []string{"ka"}, optional: []string{"f"}},
}

var pdArgs = map[string]argSpec{
	"emax":           {required: []string{"emax", "ec50"}},
	"sigmoidal-emax": {required: []string{"emax", "ec50", "n"}},
	"linear":         {required: []string{"slope"}, optional: []string{"intercept"}},
	"log-linear":     {required: []string{"slope"}, optional: []string{"intercept", "base"}},
	"fixed":          {required: []string{"e_fixed", "c_threshold"}},
}

// RouteKeys returns the accepted dose route keys, sorted.
func RouteKeys() []string { return keys(routeArgs) }

// PDKeys returns the accepted PD model keys, sorted.
func PDKeys() []string { return keys(pdArgs) }

// DoseRouteFromKey returns the route registered under key, built from
// params. Errors wrap ErrUnknownDoseRoute, ErrMissingParameter or
// ErrUnexpectedParameter; values are validated by Build.
func DoseRouteFromKey(key string, params map[string]float64) (DoseRoute, error) {
	args, ok := routeArgs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDoseRoute, key, strings.Join(RouteKeys(), ", "))
	}
	if err := args.check(key, params); err != nil {
		return nil, err
	}
	switch key {
	case "iv-bolus":
		return IVBolus{}, nil
	case "iv-infusion":
		return IVInfusion{Duration: params["duration"]}, nil
	case "oral":
		return Oral{Ka: params["ka"], F: optional(params, "f")}, nil
	default:
		return Subcutaneous{Ka: params["ka"], F: optional(params, "f")}, nil
	}
}

// optional returns params[name], or nil when it is absent.
func optional(params map[string]float64, name string) *float64 {
	if v, ok := params[name]; ok {
		return &v
	}
	return nil
}

// PDModelFromKey returns the PD model registered under key, built from
// params. Errors wrap ErrUnknownPDModel, ErrMissingParameter or
// ErrUnexpectedParameter.
func PDModelFromKey(key string, params map[string]float64) (PDModel, error) {
	args, ok := pdArgs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPDModel, key, strings.Join(PDKeys(), ", "))
	}
	if err := args.check(key, params); err != nil {
		return nil, err
	}
	switch key {
	case "emax":
		return Emax{Emax: params["emax"], EC50: params["ec50"]}, nil
	case "sigmoidal-emax":
		return SigmoidalEmax{Emax: params["emax"], EC50: params["ec50"], N: params["n"]}, nil
	case "linear":
		return Linear{Slope: params["slope"], Intercept: params["intercept"]}, nil
	case "log-linear":
		return LogLinear{Slope: params["slope"], Intercept: params["intercept"], Base: params["base"]}, nil
	default:
		return Fixed{EFixed: params["e_fixed"], CThreshold: params["c_threshold"]}, nil
	}
}

func (a argSpec) check(key string, params map[string]float64) error {
	var missing []string
	for _, name := range a.required {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", ErrMissingParameter, key, strings.Join(missing, ", "))
	}

	var extra []string
	for name := range params {
		if !a.accepts(name) {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: %s does not take %s", ErrUnexpectedParameter, key, strings.Join(extra, ", "))
	}
	return nil
}

func (a argSpec) accepts(name string) bool {
	for _, n := range a.required {
		if n == name {
			return true
		}
	}
	for _, n := range a.optional {
		if n == name {
			return true
		}
	}
	return false
}

func keys(m map[string]argSpec) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
