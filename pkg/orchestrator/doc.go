// Package orchestrator wires platform definitions, addressing strategies,
// function sets, and the template engine behind a single Generate call.
package orchestrator
