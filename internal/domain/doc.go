// Package domain contains the core business entities of the mock interview
// service: interviews with their generated question/answer records, the
// answers users record against those questions, and the AI feedback attached
// to each answer. It is independent of any storage or delivery mechanism.
package domain
