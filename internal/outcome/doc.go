// Package outcome derives promotion/relegation/expansion/re-election flags
// from free-text notes and symbolic table legends.
//
// All keyword and pattern tables live in a Rules value rather than in code,
// and can be overridden from a JSON5 file, because the inference is
// heuristic and corrections should not require a rebuild. Legend-derived
// flags are additive: a legend symbol can turn a flag on but never clears a
// flag already set from notes text.
package outcome
