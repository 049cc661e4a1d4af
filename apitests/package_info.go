// Package apitests contains the contract tests for the Users/Posts/Comments API and the
// test scope type that they run in.
//
// Test infrastructure that is not specific to this API, such as running subtests and
// collecting results, is in the lower-level framework package. Creating and removing the
// entities that tests depend on is done by the fixtures package.
package apitests
