// Package dump exports generated topology to CSV for offline analysis.
//
// Two writers cover the usual artifacts: Nodes lists a layer's element
// ids and coordinates, Connections lists generated connections together
// with the source→target displacement. Both write a header row and one
// record per line via gocsv, so the files load directly into pandas,
// gnuplot or a spreadsheet.
//
// Recorder is the capturing sink: hand it to the connection generator
// in place of a plain collector and it resolves each emission against
// the layer geometry, wrapping displacements across periodic
// boundaries. Records are sorted before writing, so the produced CSV is
// stable under concurrent generation.
//
// Errors: ErrNilLayer for missing geometry, ErrUnknownNode when an
// emission references an id outside the recorded layers, and
// core.ErrDimension family values for shape mismatches.
package dump
