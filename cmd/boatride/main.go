// Package main provides the entry point for the boatride CLI.
//
// boatride scores boating routes for ride quality: draw a route, pick a
// departure time and cruising speed, and get per-point condition scores,
// colors, and a trip timeline from the scoring backend.
//
// Usage:
//
//	boatride score sandbar
//	boatride score --file route.txt --depart 08:30 --speed 12
//
// See --help for all available options.
package main

// main is the entry point for boatride.
func main() {
	Execute()
}
