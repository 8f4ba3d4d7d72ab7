package telegram

import (
	"log/slog"

	"finbot/core/dialog"
	"finbot/core/logger"
	tghelpers "finbot/core/telegram/helpers"
	tgmiddleware "finbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// BuildRoutes binds the dialog engine to the bot surface: the /start
// command, free text for the conversation steps, and inline button taps.
func BuildRoutes(engine *dialog.Engine) []Route {
	return []Route{
		{Endpoint: "/start", Handler: handleStart(engine)},
		{Endpoint: tele.OnText, Handler: handleText(engine)},
		{Endpoint: tele.OnCallback, Handler: handleCallback(engine)},
	}
}

func handleStart(engine *dialog.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, "start")
		resp := engine.HandleStart(ctx, senderID(c))
		return Render(c, resp)
	}
}

func handleText(engine *dialog.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, "text")
		resp, err := engine.HandleText(ctx, senderID(c), c.Text())
		if err != nil {
			logger.Warn(ctx, "tg", "text.handled_with_error",
				slog.String("err", err.Error()),
			)
		}
		return Render(c, resp)
	}
}

func handleCallback(engine *dialog.Engine) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, "callback")

		// Stop the client-side spinner before doing any work.
		_ = c.Respond()

		action, payload := tgmiddleware.ParseCallback(c.Callback())
		if action == "" {
			return nil
		}

		resp, err := engine.HandleButton(ctx, senderID(c), action, payload)
		if err != nil {
			logger.Warn(ctx, "tg", "callback.handled_with_error",
				slog.String("action", action),
				slog.String("err", err.Error()),
			)
		}
		return Render(c, resp)
	}
}

func senderID(c tele.Context) int64 {
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}
