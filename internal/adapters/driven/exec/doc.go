// Package exec provides OS-level implementations of the dispatcher's
// execution ports: launching applications, opening files and URLs,
// writing the clipboard, and power control. Commands are chosen per
// platform at construction time.
package exec
