package models

// ZoneID identifies a zone. Name is unique within Owner.
type ZoneID struct {
	Name  string `json:"name" cbor:"1,keyasint"`
	Owner string `json:"owner" cbor:"2,keyasint"`
}

func (z ZoneID) String() string {
	return z.Owner + "/" + z.Name
}

// Zone is a named partition of a zoned scope. It tracks the records of the
// partition that still have to be pushed.
type Zone struct {
	ID                           ZoneID
	RecordsWithUnpushedChanges   map[string]*Record
	RecordsWithUnpushedDeletions map[string]*Record
}

func NewZone(id ZoneID) *Zone {
	return &Zone{
		ID:                           id,
		RecordsWithUnpushedChanges:   make(map[string]*Record),
		RecordsWithUnpushedDeletions: make(map[string]*Record),
	}
}

// SameZone reports whether a and b refer to the same zone. Two nil zones are
// considered equal.
func SameZone(a, b *ZoneID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
