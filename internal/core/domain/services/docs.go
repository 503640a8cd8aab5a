// Package services provides domain services that compute values across
// several domain types of the rental wizard.
//
// The package includes:
//   - PriceCalculator: turns bike pricing and a rental period into a booking quote
package services
