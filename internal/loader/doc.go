// Package loader locates manifest resources across an ordered set of
// candidate sources.
//
// A Source is the Go analog of a component loader: given a well-known
// relative path it enumerates the matching resources visible through it.
// The Resolver probes sources in order and settles on the first one that
// yields any match, which avoids double-registration when overlapping
// search roots expose the same manifest path while tolerating the absence
// of any particular root.
package loader
