// Package api handles incoming HTTP requests for interviews and answers:
// request decoding and validation, translating errors to status codes, and
// shaping JSON responses. It is an adapter between HTTP clients and the
// services in internal/service.
package api
