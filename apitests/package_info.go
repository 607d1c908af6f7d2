// Package apitests contains the Aegis Harvest API smoke tests and their supporting API.
//
// Test harness infrastructure that is not specific to Aegis Harvest, such as sending requests
// to the backend and tracking results, is in the lower-level framework package.
package apitests
