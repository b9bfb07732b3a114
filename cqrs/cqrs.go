// Package cqrs groups the in-process command and query dispatchers.
//
// Commands change state and are executed through command.Bus; queries read state
// and are executed through query.Bus. Each message carries a discriminant tag
// (its type name), handlers are routed by that tag and then asked whether they
// can handle the concrete message. Cross-cutting behavior is added with
// middlewares from the wrapper subpackages.
package cqrs
