package ocorren

// Group collects each row's fields under its record type. Record types appear
// in the order they are first seen; rows keep file order within a type.
func Group(rows []DecodedRow) *Records {
	out := &Records{}
	for _, r := range rows {
		prev, _ := out.Get(r.RecordType)
		out.Set(r.RecordType, append(prev, r.Fields))
	}
	return out
}
