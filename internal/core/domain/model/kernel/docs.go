// Package kernel provides the primitives shared by every booking aggregate:
//   - UUID: identifier for wizard sessions
//   - Location: reference to a pickup or drop-off location from the catalog
//
// Both are immutable value objects whose zero values fail Validate.
package kernel
