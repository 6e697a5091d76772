// Package resolve implements the scaffold resolver: a pure, single-pass
// computation from (blueprint, answers) to a fully resolved configuration
// and the set of template files to materialize. Defaults are computed in
// dependency order, generated defaults draw from a seedable source, and
// every constraint violation is reported as a ValidationError naming the
// offending variable. The package performs no I/O.
package resolve
