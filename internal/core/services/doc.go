// Package services implements the driving port interfaces.
// Services contain the core workflow logic (operation polling, name
// reconciliation, config resolution) and orchestrate calls to driven ports.
//
// Services are pure Go with no external dependencies beyond the logger.
package services
