// Package services holds the client-side state stores of the polygame
// client: the authenticated session, the market catalogue mirror and the
// trading mirror.
//
// Each store owns a slice of state fetched from the backend, exposes it
// through read accessors and notifies subscribers synchronously after every
// mutation. Operations follow one of three error styles:
//
//   - Result-wrapping (Register, Login, PlaceOrder, CancelOrder) never return
//     an error; failures become Result{Success: false, Error: msg}.
//   - Propagating (the Fetch* and Search* methods) log the failure and return
//     it to the caller.
//   - Silent (FetchProfile) logs the failure and returns nothing.
package services
