// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Provider: Produces candidate results for a query
//   - ResultSink: Receives ranked result deliveries (presentation layer)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - dispatch of the corresponding actions fails
// gracefully while everything else keeps working:
//
//   - AppLauncher, Opener, ClipboardWriter, PanelOpener: informational
//     action executors
//   - PowerController: system-critical action executor
//   - MeetingController: meeting-control action executor
//   - ClipboardStore: clipboard history persistence
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
