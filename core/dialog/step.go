// Package dialog implements the multi-turn conversation that drives the
// ledger: per-user sessions, the step state machine, and transport-neutral
// responses. The chat transport feeds it text and button events and renders
// whatever comes back.
package dialog

// Step identifies the user's position within the dialogue.
type Step string

const (
	// StepTitle waits for the transaction title.
	StepTitle Step = "TITLE"
	// StepCategory waits for a category button.
	StepCategory Step = "CATEGORY"
	// StepValue waits for the amount in minor units.
	StepValue Step = "VALUE"
	// StepConfirmation waits for the save yes/no buttons.
	StepConfirmation Step = "CONFIRMATION"
	// StepEditID waits for the id of the record to edit.
	StepEditID Step = "EDIT_ID"
	// StepDeleteID waits for the id of the record to delete.
	StepDeleteID Step = "DELETE_ID"
	// StepConfirmDelete waits for the delete yes/no buttons.
	StepConfirmDelete Step = "CONFIRM_DELETE"
)
