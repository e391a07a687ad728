// Package platform models the hardware variants the generator targets. A
// Platform is configuration data (unit count, pins per unit, suffix mode,
// storage symbols) and owns the coordinate space the expander iterates.
// Definitions load from YAML, JSON, or HCL files.
package platform
