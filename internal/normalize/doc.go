// Package normalize recovers structured question/answer records from the raw
// text a language model returns when asked for a JSON array.
//
// Model output is untrusted and tends to break in the same few ways: it is
// wrapped in markdown fences, surrounded by prose, truncated, or carries
// trailing commas and missing separators. The Normalizer runs a fixed
// sequence of increasingly aggressive recovery stages and stops at the first
// one that yields well-formed records:
//
//  1. strip markdown fences and parse directly
//  2. slice from the first '[' to the last ']' and parse
//  3. repair trailing commas and missing separators, then parse
//  4. salvage each balanced {...} object independently
//  5. close unbalanced brackets, then parse
//
// Stage 5 cannot succeed with strict record decoding. The candidate from
// stage 2 always ends at its last ']', so an unclosed '[' either opens a
// nested array element or sits inside a truncated object, and neither decodes
// as a record. The stage stays in the sequence as the final attempt before a
// *ParseError is returned.
//
// Separator repair in stage 3 looks only at the byte immediately after a
// comma, '}' or ']'. A trailing comma or a missing separator with whitespace
// in between is left for salvage.
//
// When every stage fails the caller receives a *ParseError that carries the
// parse failure of the extracted array, so malformed output is never
// silently turned into wrong data.
//
// All textual repairs go through a small lexer that tracks whether a byte sits
// inside a string literal, so characters inside quoted values are never
// modified.
package normalize
