package domain

// Patient is a person on the practice roster. StartDate is assigned by the
// server at creation (the date the patient joined) and never changes.
//
// Deleting a patient also deletes every program whose PatientID matches, in
// the same write. No program may outlive its patient.
type Patient struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD, optional
	Notes       string `json:"notes,omitempty"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD, server-assigned
}
