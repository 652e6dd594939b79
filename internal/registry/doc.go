// Package registry provides the process-wide service registry.
//
// The Registry maps service names to live instances. Services are added
// either programmatically with AddService or through manifest discovery:
// the first Services call resolves META-INF/kie.conf across the candidate
// sources, instantiates every directive through the constructor catalog,
// wires declared children into their parents, and then seals the registry.
// Sealing is one-way; after it every mutation fails until Reset.
package registry
