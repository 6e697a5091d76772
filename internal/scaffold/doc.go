// Package scaffold materializes new projects from template corpora. It
// powers the "kiln new" and "kiln update" commands: load the blueprint,
// resolve the answer set, select the files whose inclusion predicate holds,
// render them, and write the result plus an answer record that makes later
// regeneration reproducible.
package scaffold
