// Package native provides the built-in native functions for the Viro
// interpreter, grouped by concern across register_*.go. This file is the
// shared registry those files feed: the single source doc.go's help-system
// queries and bootstrap's startup validation both read from.
package native

// FunctionRegistry collects every native bound into the root frame, keyed by
// its bound name, so documentation tooling (ValidateRegistry, GetCategories,
// CountDocumented) can inspect the whole natives surface without re-walking
// frame bindings. Each RegisterXNatives function records into it alongside
// its rootFrame.Bind calls.
var FunctionRegistry = make(map[string]*NativeInfo)
