// Package types defines the object vocabulary, the Client capability
// interface, and the pure core logic of the bridge: type-label
// normalization, link validation, region-bounds parsing, and the
// in-memory table buffer. It has no dependency on any backend.
package types
