// Package topofile reads experiment descriptions from YAML: named
// layers and the connection passes to run between them.
//
// A document has two sections. layers lists grid or free populations
// with their geometry; element ids are assigned contiguously in
// declaration order, starting at 0. connections lists generation
// passes by layer name, each with an optional mask, kernel, weight and
// delay field, a fan count and the autapse/multapse switches (both
// allowed when omitted).
//
// Masks and fields are tagged maps: a type name selects the variant and
// the remaining keys parameterize it. Omitted numeric parameters are
// zero; variants whose constructor rejects zero (sigma, tau, radius)
// therefore demand explicit values. Any field accepts the cutoff,
// clamp_min and clamp_max modifier keys.
//
// Loading is strict and fail-closed: unknown document keys, unknown
// type names (ErrUnknownRule, ErrUnknownMask, ErrUnknownField,
// ErrUnknownKind, ErrUnknownLayer) and invalid parameters are all
// reported before a single connection is generated. Load validates
// structure and names; BuildLayers and Passes run the constructors, so
// a File that made it through Passes generates without configuration
// errors.
package topofile
