// Package decode turns raw subscribe long-poll responses into typed events.
//
// A response is {"t": cursor, "m": [envelope...]}. Every envelope is classified
// by probing its payload in a fixed order:
//
//  1. presence shape (action, numeric timestamp and occupancy)
//  2. object shape (source, version, event, type, data)
//  3. message action shape (source, version, event added/removed, data)
//  4. the generic envelope, using the "e" discriminant; absent means message
//
// The order matters: shapes 1-3 also decode as generic envelopes and would be
// misclassified as messages if probed later.
//
// A malformed envelope is reported as an ItemError and the rest of the batch
// is still decoded. When the whole body is broken, the leading cursor is
// salvaged if possible and returned inside a ResponseError so the caller can
// move past the bad batch.
package decode
