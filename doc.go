// Package ocorren decodes fixed-width OCORREN occurrence report files into
// records, validating every field against a declarative layout.
//
// - Layouts are data: record type -> field -> {position, length, mandatory,
// alphanumeric}, loaded from JSON or YAML, with the 3.1 and 5.0 layouts embedded.
// - The layout version can be given or detected from the record types present.
// - Every problem in a file is reported in one pass via DecodeError; a file
// with any problem yields no records.
//
// Design policy:
// - Keep only public APIs in the root package; put token handling under internal/ and source/.
// - Structural row problems void the row, field problems void the field, and
// either voids the file result.
// - Fields named FILLER are padding: they do not count toward a record's
// minimum length and may hold blank characters of any kind. This is a naming
// convention of the layouts, not a layout attribute.
//
// Typical usage:
//
//	recs, err := ocorren.DecodeFile("OCOR2910.TXT", ocorren.DecodeOpt{Language: "pt"})
//	if de := (*ocorren.DecodeError)(nil); errors.As(err, &de) {
//		fmt.Println(de.JSON())
//	}
//	out, err := render.Marshal(render.JSON, recs)
package ocorren
