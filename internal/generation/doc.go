// Package generation defines the boundary between the application core and
// the generative AI service that writes interview questions and grades
// answers.
//
// The Generator interface is what services depend on. Outbound traffic to the
// model goes through a Gate, which enforces a minimum interval between
// requests and classifies upstream failures into a closed set of kinds
// (see Error) so callers can tell a local throttle from an upstream quota
// rejection without inspecting messages.
package generation
