// Package scattering holds S-parameter data as a dynamic-schema table.
//
// A Table is column-oriented: an ordered set of named columns, each a slice
// of Values. Three kinds of column coexist:
//
//	Frequency (Hz)     the frequency axis (FrequencyHeader)
//	S{out}{in} (dB)    one gain column per ordered port pair (GainHeader)
//	anything else      a dependency axis: bias, temperature, ...
//
// Frequency and dependency columns are axes: together they identify a row.
// Gain columns hold values in decibels and may be Missing.
//
// Operations return new tables and leave the receiver untouched, except
// AddColumn, AppendRow, AppendRecord and Set, which mutate in place:
//
//	Select(keep, filters...)    column projection + equality row filter
//	Rename(old, new)            structural copy with one column renamed
//	Merge(other, Outer|Inner)   join on shared axis columns
//	ExpandColumn(name, values)  Cartesian broadcast over a new axis
//	Dependencies(t)             the dependency column names
//
// Errors:
//
//	ErrSchemaMismatch   unknown column, or nothing shared to merge on
//	ErrDuplicateColumn  column name already taken
//	ErrRowOutOfRange    row index outside the table
package scattering
