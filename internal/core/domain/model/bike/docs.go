// Package bike models the bikes listed by the catalog: Bike, its Pricing,
// and the Filter used when listing bikes at a pickup location.
//
// Key business rules:
//   - The booking total only uses the day rate
//   - Weekly and monthly estimates fall back to 6 and 25 day rates when the
//     bike has no explicit weekly or monthly rate
//   - A delivery fee, when set, is charged once per booking
package bike
