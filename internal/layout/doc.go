// Package layout positions topology nodes with a force-directed
// simulation: inverse-square repulsion between every node pair, Hooke
// spring attraction along edges, and a weak centering pull. The model
// is over-damped: each tick adds the summed force straight to the
// position, no velocity carries between ticks.
//
// Three pieces compose the engine:
//
//   - [Store]: the authoritative position map and its bounds clamp
//   - [Step]: one pure iteration of force application
//   - [Driver]: the run/stop lifecycle ticking Step on a fixed cadence
//
// Renderers read [Driver.Snapshot] on their own frame cadence; the
// physics cadence is the driver's own.
package layout
