// Package predict posts form payloads to an operator supplied prediction
// endpoint and classifies the outcome.
//
// A call is a single POST with no retry. Failures are reported as
// *TransportError when the request could not be completed, or as
// *ApplicationError when the endpoint answered with something other than a
// usable prediction. Message extracts the text shown to the user.
package predict
