// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of smoke tests against an HTTP service.
//
// The general model is:
//
// 1. The test harness sends requests to the service under test and expects JSON responses.
// Anything else (no connection, a non-2xx status, an unparseable body) is a typed error.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// 3. Tests run one at a time in a fixed order, and the first failure halts the run.
//
// The domain-specific code that knows what is being tested is responsible for deciding which
// requests to send and what the responses must contain.
package framework
