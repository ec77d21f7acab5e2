// Package boundsub provides a reference cutgen.TransformedLP that
// rewrites a row into cutgen's working space by shifting every column
// to its lower bound and complementing columns with a negative
// coefficient and a finite upper bound. It performs no elimination of
// implicit slack variables: a host whose rows carry row-activity slacks
// wants its own TransformedLP that folds those out before handing the
// row to an Engine. This package is meant for hosts, and tests, that
// work directly in structural variable space.
package boundsub
