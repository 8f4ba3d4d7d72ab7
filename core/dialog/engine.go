package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finbot/core/ledger"
	"finbot/core/logger"

	"log/slog"
)

// Clock supplies the current time; injected so tests can pin created_at.
type Clock func() time.Time

// createdAtLayout matches the timestamp format of existing snapshot files.
const createdAtLayout = "02/01/2006, 15:04:05"

// Engine drives the conversation state machine. One engine serves all users;
// per-user state lives in the injected session store.
type Engine struct {
	store    ledger.Store
	sessions *Sessions
	bundle   Bundle
	clock    Clock
}

// NewEngine wires the engine to its collaborators. A nil clock falls back to
// time.Now.
func NewEngine(store ledger.Store, sessions *Sessions, bundle Bundle, clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{store: store, sessions: sessions, bundle: bundle, clock: clock}
}

// HandleStart resets the user's session and presents the main menu.
func (e *Engine) HandleStart(ctx context.Context, userID int64) Response {
	e.sessions.Clear(userID)
	logger.Debug(ctx, "dialog", "session.reset", slog.Int64("user_id", userID))
	return e.MainMenu()
}

// HandleText applies a free-text message against the user's current step.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) (Response, error) {
	b := e.bundle

	if b.IsCancelWord(text) {
		e.sessions.Clear(userID)
		menu := e.MainMenu()
		menu.Text = b.OperationCancelled
		return menu, nil
	}

	sess := e.sessions.Get(userID)
	if sess == nil {
		// First contact starts a fresh entry; without an explicit menu choice
		// the pending type defaults to expense, matching the category menu
		// the user will be shown.
		e.sessions.Put(userID, Session{Step: StepTitle, Pending: ledger.Transaction{Type: ledger.Expense}})
		return Response{Text: b.AskTitle}, nil
	}

	switch sess.Step {
	case StepEditID:
		return e.textEditID(ctx, userID, text)
	case StepDeleteID:
		return e.textDeleteID(ctx, userID, text)
	case StepTitle:
		return e.textTitle(userID, *sess, text)
	case StepValue:
		return e.textValue(ctx, userID, *sess, text)
	case StepCategory:
		return Response{Text: b.ChooseCategoryButtons, Buttons: e.categoryMenu(sess.Pending.Type)}, nil
	case StepConfirmation:
		return Response{Text: b.UseConfirmButtons, Buttons: e.confirmButtons()}, nil
	case StepConfirmDelete:
		return Response{Text: b.UseDeleteButtons, Buttons: e.deleteButtons()}, nil
	}

	return e.MainMenu(), nil
}

// HandleButton applies a button tap against the user's current step. The
// payload carries button data such as the chosen category.
func (e *Engine) HandleButton(ctx context.Context, userID int64, action, payload string) (Response, error) {
	b := e.bundle

	switch action {
	case ActionAddIncome, ActionAddExpense:
		t := ledger.Expense
		prompt := b.AskTitleExpense
		if action == ActionAddIncome {
			t = ledger.Income
			prompt = b.AskTitleIncome
		}
		e.sessions.Put(userID, Session{Step: StepTitle, Pending: ledger.Transaction{Type: t}})
		return Response{Text: prompt}, nil

	case ActionCategory:
		return e.buttonCategory(userID, payload)

	case ActionConfirm:
		return e.buttonConfirm(ctx, userID)

	case ActionCancel:
		e.sessions.Clear(userID)
		return Response{Text: b.TransactionCancelled, Edit: true, FollowUp: e.menuFollowUp()}, nil

	case ActionConfirmDelete:
		return e.buttonConfirmDelete(ctx, userID)

	case ActionCancelDelete:
		e.sessions.Clear(userID)
		return Response{Text: b.DeletionCancelled, Edit: true, FollowUp: e.menuFollowUp()}, nil

	case ActionLast:
		return e.buttonLast(ctx)

	case ActionTotalExpenses:
		return e.buttonTotal(ctx, ledger.Expense)

	case ActionTotalIncome:
		return e.buttonTotal(ctx, ledger.Income)

	case ActionEdit:
		return e.buttonListIDs(ctx, userID, StepEditID)

	case ActionDelete:
		return e.buttonListIDs(ctx, userID, StepDeleteID)
	}

	logger.Debug(ctx, "dialog", "button.unknown",
		slog.Int64("user_id", userID),
		slog.String("action", logger.SanitizeLimit(action, 64)),
	)
	return e.MainMenu(), nil
}

func (e *Engine) textTitle(userID int64, sess Session, text string) (Response, error) {
	title, err := ledger.NormalizeTitle(text)
	if err != nil {
		return Response{Text: e.bundle.InvalidTitle}, nil
	}
	sess.Pending.Title = title
	sess.Step = StepCategory
	e.sessions.Put(userID, sess)
	return Response{Text: e.bundle.ChooseCategory, Buttons: e.categoryMenu(sess.Pending.Type)}, nil
}

func (e *Engine) textValue(ctx context.Context, userID int64, sess Session, text string) (Response, error) {
	b := e.bundle
	value, err := ledger.ParseValue(text)
	if err != nil {
		return Response{Text: b.InvalidValue}, nil
	}

	sess.Pending.Value = value
	if sess.Pending.ID == 0 {
		id, err := ledger.NextID(ctx, e.store)
		if err != nil {
			logger.Error(ctx, "dialog", "store.read_failed",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			return Response{Text: b.TryAgain}, err
		}
		sess.Pending.ID = id
	}
	if sess.Pending.CreatedAt == "" {
		sess.Pending.CreatedAt = e.clock().Format(createdAtLayout)
	}
	sess.Step = StepConfirmation
	e.sessions.Put(userID, sess)

	text = b.ConfirmSave + "\n\n" + e.summary(sess.Pending)
	return Response{Text: text, Markdown: true, Buttons: e.confirmButtons()}, nil
}

func (e *Engine) textEditID(ctx context.Context, userID int64, text string) (Response, error) {
	record, resp, err := e.lookupByText(ctx, text)
	if err != nil || !resp.Empty() {
		return resp, err
	}
	e.sessions.Put(userID, Session{Step: StepTitle, Pending: record})
	prompt := e.bundle.AskNewTitleExpense
	if record.Type == ledger.Income {
		prompt = e.bundle.AskNewTitleIncome
	}
	return Response{Text: prompt}, nil
}

func (e *Engine) textDeleteID(ctx context.Context, userID int64, text string) (Response, error) {
	record, resp, err := e.lookupByText(ctx, text)
	if err != nil || !resp.Empty() {
		return resp, err
	}
	e.sessions.Put(userID, Session{Step: StepConfirmDelete, Pending: record})
	body := e.bundle.ConfirmDeletion + "\n\n" + e.summary(record)
	return Response{Text: body, Markdown: true, Buttons: e.deleteButtons()}, nil
}

// lookupByText resolves a typed id to a record. Non-numeric input counts as
// not found. A populated Response means the caller should return it as-is.
func (e *Engine) lookupByText(ctx context.Context, text string) (ledger.Transaction, Response, error) {
	id, convErr := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if convErr != nil {
		return ledger.Transaction{}, Response{Text: e.bundle.InvalidID}, nil
	}
	record, err := e.store.FindByID(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return ledger.Transaction{}, Response{Text: e.bundle.InvalidID}, nil
	}
	if err != nil {
		logger.Error(ctx, "dialog", "store.read_failed", slog.String("err", err.Error()))
		return ledger.Transaction{}, Response{Text: e.bundle.TryAgain}, err
	}
	return record, Response{}, nil
}

func (e *Engine) buttonCategory(userID int64, payload string) (Response, error) {
	sess := e.sessions.Get(userID)
	if sess == nil {
		return e.MainMenu(), nil
	}
	category := ledger.Category(payload)
	if sess.Step != StepCategory || !ledger.ValidCategory(sess.Pending.Type, category) {
		// Stale or mismatched tap; show the menu that belongs to this session.
		return Response{Text: e.bundle.ChooseCategoryButtons, Buttons: e.categoryMenu(sess.Pending.Type)}, nil
	}
	sess.Pending.Category = category
	sess.Step = StepValue
	e.sessions.Put(userID, *sess)
	prompt := fmt.Sprintf(e.bundle.AskValue, e.bundle.TypeName(sess.Pending.Type))
	return Response{Text: prompt, Edit: true}, nil
}

func (e *Engine) buttonConfirm(ctx context.Context, userID int64) (Response, error) {
	b := e.bundle
	sess := e.sessions.Get(userID)
	if sess == nil || sess.Step != StepConfirmation {
		return e.MainMenu(), nil
	}

	record := sess.Pending
	if err := e.persist(ctx, record); err != nil {
		logger.Error(ctx, "dialog", "store.write_failed",
			slog.Int64("user_id", userID),
			slog.Int64("tx_id", record.ID),
			slog.String("err", err.Error()),
		)
		// Session stays at the confirmation step so the user can retry.
		return Response{Text: b.SaveFailed, Buttons: e.confirmButtons()}, err
	}

	e.sessions.Clear(userID)
	logger.Info(ctx, "dialog", "transaction.saved",
		slog.Int64("user_id", userID),
		slog.Int64("tx_id", record.ID),
		slog.String("type", string(record.Type)),
		slog.Int64("value", record.Value),
	)

	header := b.SavedExpense
	if record.Type == ledger.Income {
		header = b.SavedIncome
	}
	body := header + "\n\n" + e.summary(record)
	return Response{Text: body, Markdown: true, Edit: true, FollowUp: e.menuFollowUp()}, nil
}

// persist appends a new record or updates the stored one when the pending id
// already exists. Edits therefore land in place while fresh ids append.
func (e *Engine) persist(ctx context.Context, record ledger.Transaction) error {
	_, err := e.store.FindByID(ctx, record.ID)
	switch {
	case err == nil:
		return e.store.UpdateInPlace(ctx, record.ID, ledger.Fields{
			Title:    record.Title,
			Type:     record.Type,
			Category: record.Category,
			Value:    record.Value,
		})
	case errors.Is(err, ledger.ErrNotFound):
		return e.store.Append(ctx, record)
	default:
		return err
	}
}

func (e *Engine) buttonConfirmDelete(ctx context.Context, userID int64) (Response, error) {
	b := e.bundle
	sess := e.sessions.Get(userID)
	if sess == nil || sess.Step != StepConfirmDelete {
		return e.MainMenu(), nil
	}

	deleted, err := e.store.DeleteByID(ctx, sess.Pending.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		e.sessions.Clear(userID)
		return Response{Text: b.DeleteFailed, Edit: true, FollowUp: e.menuFollowUp()}, nil
	}
	if err != nil {
		logger.Error(ctx, "dialog", "store.write_failed",
			slog.Int64("user_id", userID),
			slog.Int64("tx_id", sess.Pending.ID),
			slog.String("err", err.Error()),
		)
		return Response{Text: b.SaveFailed, Buttons: e.deleteButtons()}, err
	}

	e.sessions.Clear(userID)
	logger.Info(ctx, "dialog", "transaction.deleted",
		slog.Int64("user_id", userID),
		slog.Int64("tx_id", deleted.ID),
	)
	body := b.Deleted + "\n\n" + e.summary(deleted)
	return Response{Text: body, Markdown: true, Edit: true, FollowUp: e.menuFollowUp()}, nil
}

func (e *Engine) buttonLast(ctx context.Context) (Response, error) {
	records, err := e.store.LastN(ctx, 10)
	if err != nil {
		logger.Error(ctx, "dialog", "store.read_failed", slog.String("err", err.Error()))
		return Response{Text: e.bundle.TryAgain}, err
	}
	if len(records) == 0 {
		return Response{Text: e.bundle.NoTransactions}, nil
	}
	cards := make([]string, 0, len(records))
	for _, r := range records {
		cards = append(cards, e.summary(r))
	}
	return Response{Text: strings.Join(cards, "\n\n"), Markdown: true}, nil
}

func (e *Engine) buttonTotal(ctx context.Context, t ledger.Type) (Response, error) {
	sum, count, err := e.store.TotalByType(ctx, t)
	if err != nil {
		logger.Error(ctx, "dialog", "store.read_failed", slog.String("err", err.Error()))
		return Response{Text: e.bundle.TryAgain}, err
	}
	format := e.bundle.TotalExpenses
	if t == ledger.Income {
		format = e.bundle.TotalIncome
	}
	return Response{Text: fmt.Sprintf(format, ledger.FormatValue(sum), count)}, nil
}

func (e *Engine) buttonListIDs(ctx context.Context, userID int64, next Step) (Response, error) {
	b := e.bundle
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		logger.Error(ctx, "dialog", "store.read_failed", slog.String("err", err.Error()))
		return Response{Text: b.TryAgain}, err
	}

	empty := b.NothingToEdit
	prompt := b.AskEditID
	if next == StepDeleteID {
		empty = b.NothingToDelete
		prompt = b.AskDeleteID
	}
	if len(records) == 0 {
		return Response{Text: empty}, nil
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%d - %s (%s)", r.ID, r.Title, b.TypeName(r.Type)))
	}
	e.sessions.Put(userID, Session{Step: next})
	return Response{Text: prompt + "\n\n" + strings.Join(lines, "\n")}, nil
}

// MainMenu builds the top-level action menu.
func (e *Engine) MainMenu() Response {
	b := e.bundle
	return Response{
		Text: b.MainMenu,
		Buttons: [][]Button{
			{{Label: b.BtnAddIncome, Action: ActionAddIncome}},
			{{Label: b.BtnAddExpense, Action: ActionAddExpense}},
			{{Label: b.BtnLast, Action: ActionLast}},
			{{Label: b.BtnEdit, Action: ActionEdit}},
			{{Label: b.BtnDelete, Action: ActionDelete}},
			{{Label: b.BtnTotalExpenses, Action: ActionTotalExpenses}},
			{{Label: b.BtnTotalIncome, Action: ActionTotalIncome}},
		},
	}
}

func (e *Engine) menuFollowUp() *Response {
	menu := e.MainMenu()
	return &menu
}

func (e *Engine) categoryMenu(t ledger.Type) [][]Button {
	categories := ledger.CategoriesFor(t)
	rows := make([][]Button, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []Button{{
			Label:   e.bundle.CategoryName(c),
			Action:  ActionCategory,
			Payload: string(c),
		}})
	}
	return rows
}

func (e *Engine) confirmButtons() [][]Button {
	return [][]Button{
		{{Label: e.bundle.BtnYes, Action: ActionConfirm}},
		{{Label: e.bundle.BtnNo, Action: ActionCancel}},
	}
}

func (e *Engine) deleteButtons() [][]Button {
	return [][]Button{
		{{Label: e.bundle.BtnYes, Action: ActionConfirmDelete}},
		{{Label: e.bundle.BtnNo, Action: ActionCancelDelete}},
	}
}

func (e *Engine) summary(t ledger.Transaction) string {
	return fmt.Sprintf("🆔 ID: %d\n📌 *%s*\n💼 %s\n📂 %s\n💰 %s\n🕒 %s",
		t.ID,
		t.Title,
		e.bundle.TypeName(t.Type),
		e.bundle.CategoryName(t.Category),
		ledger.FormatValue(t.Value),
		t.CreatedAt,
	)
}
