// Package depot holds the pickup points orders transit through and the zones that
// partition depots and agents for dispatch.
package depot
