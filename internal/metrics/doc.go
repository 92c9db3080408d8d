// Package metrics is the sampling core of tusk.
//
// A Collector pulls fresh readings from a Source once per tick, turns
// cumulative counters into per-second rates, keeps every sampled quantity in a
// bounded history.Series and drives the single tracked process through its
// lifecycle. After each successful Tick the Snapshot reflects that tick in
// full. A failed Tick leaves it exactly as it was.
//
// The Collector is single-threaded. The terminal UI calls Tick and reads the
// Snapshot from the same goroutine, so no locking is involved.
package metrics
