package dialog

// Button actions understood by the engine. The transport maps its own
// callback encoding onto these and back.
const (
	ActionAddIncome     = "add_income"
	ActionAddExpense    = "add_expense"
	ActionLast          = "last"
	ActionEdit          = "edit"
	ActionDelete        = "delete"
	ActionTotalExpenses = "total_expenses"
	ActionTotalIncome   = "total_income"
	ActionCategory      = "category"
	ActionConfirm       = "confirm"
	ActionCancel        = "cancel"
	ActionConfirmDelete = "confirm_delete"
	ActionCancelDelete  = "cancel_delete"
)

// Button is one tappable choice offered to the user. Payload rides along with
// the action when the choice carries data (the category name).
type Button struct {
	Label   string
	Action  string
	Payload string
}

// Response is what the engine hands back to the transport for rendering:
// text, an optional button menu, a formatting hint, and an optional trailing
// message. Edit asks the transport to replace the message whose button was
// tapped instead of sending a new one.
type Response struct {
	Text     string
	Markdown bool
	Buttons  [][]Button
	Edit     bool
	FollowUp *Response
}

// Empty reports whether the response carries nothing to render.
func (r Response) Empty() bool {
	return r.Text == "" && len(r.Buttons) == 0 && r.FollowUp == nil
}
