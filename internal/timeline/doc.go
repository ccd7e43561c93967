// Package timeline defines the canonical representation of synthesizer
// output: ordered text fragments with start/end offsets in 100-nanosecond
// ticks, the native reporting precision of the speech backends.
//
// Timelines are value types. Every transformation returns a new slice so
// pipeline stages never alias each other's data.
package timeline
