package domain

// Program assigns a set of catalog exercises to one patient.
//
// PatientID must reference an existing patient when the program is created
// and is immutable afterwards. ExerciseIDs are NOT validated: deleting an
// exercise leaves a dangling id behind, which readers tolerate and skip.
// Frequency is stored as entered ("daily", "2x/day", "weekly", "2x/week"
// in practice) without validation. StartDate is server-assigned at creation
// and immutable.
type Program struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patientId"`
	ExerciseIDs []string `json:"exerciseIds"`
	Frequency   string   `json:"frequency,omitempty"`
	StartDate   string   `json:"startDate"` // YYYY-MM-DD, server-assigned
}
