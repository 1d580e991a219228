package domain

// Exercise is a single entry in the practice's exercise catalog.
// All descriptive fields are free text; only Name is required.
type Exercise struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`     // e.g. "Neck", "Back"
	Instructions string `json:"instructions,omitempty"`
	Reps         string `json:"reps,omitempty"`
	Sets         string `json:"sets,omitempty"`
	Duration     string `json:"duration,omitempty"` // e.g. "5 min"
}
