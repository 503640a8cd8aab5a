// Package booking holds the booking-side values of the wizard:
//   - RentalPeriod: dates, times and delivery address captured at step 3
//   - Quote: the derived price of a booking
//   - Request: the payload submitted to the booking gateway
//   - Booking: the created record returned by the gateway
package booking
