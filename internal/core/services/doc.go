// Package services implements the driving port interfaces.
// Services contain the core business logic: query generations,
// provider fan-out, ranking, and action dispatch. They orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond google/uuid.
package services
