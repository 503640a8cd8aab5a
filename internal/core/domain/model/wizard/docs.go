// Package wizard implements the booking wizard aggregate.
//
// A wizard walks through five steps: location selection, bike selection,
// rental period, drop-off partner and confirmation. Every change is an Event
// passed to Wizard.Apply. Two screens interrupt the steps: NoBikesAvailable
// when the pickup location has nothing to rent, and BookingSucceeded after
// submission, which is followed by a Countdown to the dashboard redirect.
//
// Bike fetches are asynchronous. Each fetch is tagged with the wizard's fetch
// token and its result is dropped with ErrFetchIsStale once the token moved on.
package wizard
