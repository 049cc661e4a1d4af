// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to the API being tested.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// 2. Every test context can defer cleanup work, which runs when the test ends no matter how
// it ended. Problems during cleanup can be reported as warnings, which are kept apart from
// failures so that cleanup never masks the outcome of the test itself.
//
// 3. Tests can be selected with regex filters on their full path, and each test captures
// its own debug output so that it can be shown only for the tests where it matters.
//
// The domain-specific code that knows what is being tested is responsible for creating the
// data that tests need and for providing a domain-specific test API on top of the test context.
package framework
