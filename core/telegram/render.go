package telegram

import (
	"finbot/core/dialog"
	tghelpers "finbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// markupFor converts dialog buttons into an inline keyboard.
func markupFor(buttons [][]dialog.Button) *tele.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{}
	rows := make([][]tele.InlineButton, 0, len(buttons))
	for _, row := range buttons {
		line := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			btn := markup.Data(b.Label, b.Action, b.Payload)
			line = append(line, *btn.Inline())
		}
		rows = append(rows, line)
	}
	markup.InlineKeyboard = rows
	return markup
}

// Render delivers a dialog response to the chat: edits replace the tapped
// message in place, plain responses go through the async sender, and any
// follow-up is rendered after the primary message.
func Render(c tele.Context, resp dialog.Response) error {
	if !resp.Empty() {
		markup := markupFor(resp.Buttons)
		var err error
		switch {
		case resp.Edit:
			err = tghelpers.EditOrSendMD(c, resp.Text, markup)
		case resp.Markdown:
			err = tghelpers.SendMD(c, resp.Text, markup)
		default:
			err = tghelpers.SendText(c, resp.Text, &tele.SendOptions{ReplyMarkup: markup})
		}
		if err != nil {
			return err
		}
	}
	if resp.FollowUp != nil {
		return Render(c, *resp.FollowUp)
	}
	return nil
}
