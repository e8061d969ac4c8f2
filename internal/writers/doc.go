// internal/writers/doc.go

// Package writers turns nearest-neighbour results into serialized outputs.
//
// Design:
//   - Formats register an Opener by name (tsv, jsonl); callers pick one by string.
//   - Writing runs in its own goroutine fed by a channel, so producers never
//     block on formatting.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
//   - Create picks a compressor from the destination suffix.
package writers
