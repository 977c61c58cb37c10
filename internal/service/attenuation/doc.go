// Package attenuation implements the gamma attenuation engine.
//
// It exposes density and mass-attenuation-coefficient lookups over the
// absorber repository and computes per-layer transmittance with the
// Beer-Lambert law: T = exp(-μ/ρ · ρ · t).
package attenuation
