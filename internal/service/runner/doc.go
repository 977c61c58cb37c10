// Package runner executes attenuation instruction scripts.
//
// A script sets the gamma energy and stacks shielding layers, one instruction
// per line. The runner drives the attenuation engine for each layer,
// accumulates the remaining beam intensity, logs every step, and renders a
// summary table at the end of a successful run.
package runner
