// Package model declares the configuration schemas of the training-job
// domain: resume indexes, data-loader configs with their count-governed
// path and worker lists, task configs with presence-driven loader lists,
// the polymorphic task selector, and the root training config. The
// reactive machinery itself lives in the conf package; this package is
// pure schema declaration.
package model
