// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ResourceClient: REST access to engines, data stores, documents and operations
//   - TokenProvider: Bearer tokens for the resource service
//   - HTTPDoer: The raw HTTP capability the resource client sends through
//   - Clock: Time source and sleeper used by the operation poller
//   - ConfigSource: External defaults (config file, gcloud) for Config loading
//   - ConfigStore: Persistent key/value configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
