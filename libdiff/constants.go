package libdiff

// Diff nodes are objects. A change at one position is an object with a
// single marker key:
//
//	{"!delete": <from>}
//	{"!insert": <to>}
//	{"!replace": {"from": <from>, "to": <to>}}
//	{"!listdiff": {"<index>": <diff>, ...}}
//
// Any other object is an object diff mapping changed keys to diffs. In an
// object diff a key starting with '!' has that '!' doubled, so "!delete"
// is written "!!delete" and never reads as a marker.
const (
	DeleteKey   = "!delete"
	InsertKey   = "!insert"
	ReplaceKey  = "!replace"
	ListDiffKey = "!listdiff"

	FromKey = "from"
	ToKey   = "to"
)
