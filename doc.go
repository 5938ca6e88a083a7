// Package gridastar provides A* pathfinding over 2D weighted grids.
//
// A grid cell's value is the cost of entering it; a value of zero marks the
// cell impassable. The package exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The library uses a worker pool to parallelize neighbor expansion while
// keeping a single orchestrator that owns the frontier. Movement model and
// heuristic are configurable; the defaults are 4-way movement scored with the
// Manhattan distance.
package gridastar
