package types

// AutofillState tracks the metadata lookup of the add-game form
type AutofillState string

const (
	AutofillIdle     AutofillState = "idle"
	AutofillPending  AutofillState = "pending"
	AutofillResolved AutofillState = "resolved"
)

// FormState is a snapshot of the add-game form
type FormState struct {
	Open     bool          `json:"open"`
	Draft    GameDraft     `json:"draft"`
	Autofill AutofillState `json:"autofill"`
	Found    bool          `json:"found"` // whether the last resolved lookup produced metadata
}
