// SPDX-License-Identifier: MIT

// Package config loads simulation runs from YAML files and PKPD_*
// environment variables.
//
// Load reads an optional .env file (github.com/joho/godotenv), then the
// given YAML file, then PKPD_ prefixed variables with "." replaced by
// "_" (PKPD_MODEL_DOSE, PKPD_SIMULATION_END). Later sources win. The
// result is validated with go-playground/validator struct tags.
//
// Parameter overrides are lists of {name, value} pairs rather than
// maps: viper folds map keys to lower case and parameter names are case
// sensitive.
//
// Example file:
//
//	model:
//	  compartments: 2
//	  dose: 100
//	  volumes: [10, 25]
//	  route: {key: oral, params: {ka: 1.2, f: 0.8}}
//	  pd: {key: emax, params: {emax: 1, ec50: 4}}
//	simulation:
//	  end: 48
//	  points: 97
//	  timeout: 10s
//	log:
//	  level: debug
//	  format: json
package config
