// Package config provides configuration structures and utilities for the
// boat-ride client. It defines the options that drive route scoring, the
// .boatride route file format, and report generation preferences.
package config
