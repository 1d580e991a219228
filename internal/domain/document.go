package domain

import "encoding/json"

// Document is the full contents of the practice data file. Every mutation
// loads the whole document, changes one collection, and writes the whole
// document back.
//
// Compliance is reserved for out-of-scope tooling that shares the same file;
// it is carried through every write untouched so we never drop its data.
type Document struct {
	Exercises  []Exercise        `json:"exercises"`
	Patients   []Patient         `json:"patients"`
	Programs   []Program         `json:"programs"`
	Compliance []json.RawMessage `json:"compliance"`
}

// NewDocument returns the zero-value document: four empty collections.
// A missing or unreadable data file decodes to this.
func NewDocument() Document {
	return Document{
		Exercises:  []Exercise{},
		Patients:   []Patient{},
		Programs:   []Program{},
		Compliance: []json.RawMessage{},
	}
}
