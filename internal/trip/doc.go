// Package trip implements the route-scoring workflow as a pipeline of steps.
//
// A trip moves through five stages: point collection (validation and
// deduplication), time/speed parameter derivation, sampling-interval
// computation, backend scoring, and color mapping. Each stage is implemented
// as a Step that receives the accumulated Trip and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for slow backend calls
//
// The pipeline supports both individual trips and batch processing with
// concurrency control using errgroup (scoring every saved route at once).
package trip
