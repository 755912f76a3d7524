package flagctx

// Package flagctx provides:
//
// - The Context model of a feature-flag evaluation SDK: a kind-qualified identity plus attributes, single- or multi-kind
// - Strict decoding of the three wire shapes (legacy user, modern single-kind, modern multi-kind) with shape discrimination driven by the type and presence of "kind"
// - Canonical encoding back to the modern shapes only; legacy input is normalized on the way in and never re-emitted
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put the wire-shape machinery under internal/wire.
// - Place the attribute value and reference types under attr/.
// - The codec is pure and stateless: no I/O, no shared state, safe for concurrent use.
//
// Typical usage:
//
//  c, err := flagctx.DecodeJSON(data)
//  out, err := flagctx.EncodeJSON(c)
//
//  c, err := flagctx.NewBuilder("user-key").Kind("org").Name("Sandy").Build()
//  mc, err := flagctx.NewMultiBuilder().Add(c1).Add(c2).Build()
//
