// Package construct holds the catalog of named service constructors.
//
// Manifest directives refer to services by a string type identifier
// (for example "eventbus.Bus"). The catalog maps those identifiers to
// compiled Go constructor functions, so a manifest entry can be turned
// into a live instance without any reflection over unknown types. Service
// packages register their constructors explicitly through the Module
// interface during application startup.
package construct
