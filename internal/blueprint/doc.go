// Package blueprint handles parsing and validation of Kiln blueprints. A
// blueprint declares the configurable variables of a project template
// (string, bool, or choice), their defaults and constraints, and the
// per-file inclusion rules that decide which template files are
// materialized. Structural validation runs against an embedded JSON Schema;
// semantic checks (undeclared references, default dependency cycles) run in
// Check.
package blueprint
