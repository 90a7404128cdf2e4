// Package socket receives Slack traffic over a Socket Mode websocket.
package socket

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/modules/slackbot/mapper"
	"slack-meet-bot/modules/slackbot/service"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

type acknowledger interface {
	Ack(req socketmode.Request, payload ...interface{})
}

// Listener acks every envelope immediately and runs the handler for it on a
// separate goroutine, so a slow calendar call never blocks the read loop.
type Listener struct {
	client  *socketmode.Client
	acker   acknowledger
	handler service.CommandHandler
	command string

	wg sync.WaitGroup
}

func NewListener(api *slack.Client, handler service.CommandHandler, cfg *config.Config) *Listener {
	client := socketmode.New(api,
		socketmode.OptionDebug(cfg.Log.Level == "debug"),
		socketmode.OptionLog(slog.NewLogLogger(logger.L().Handler(), slog.LevelDebug)),
	)
	return &Listener{
		client:  client,
		acker:   client,
		handler: handler,
		command: cfg.Slack.Command,
	}
}

// Run blocks until ctx is cancelled or the connection fails for good.
// Handlers still in flight are waited for before returning.
func (l *Listener) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.client.RunContext(ctx)
	}()

	logger.Info("SocketListener:Run:Started", "command", l.command)
	for {
		select {
		case <-ctx.Done():
			err := <-errCh
			l.wg.Wait()
			logger.Info("SocketListener:Run:Stopped")
			if err != nil && !stderrors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case err := <-errCh:
			l.wg.Wait()
			logger.Error("SocketListener:Run:ConnectionClosed", "error", err)
			return err
		case evt, ok := <-l.client.Events:
			if !ok {
				l.wg.Wait()
				return nil
			}
			l.handleEvent(ctx, evt)
		}
	}
}

func (l *Listener) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		logger.Info("SocketListener:Connecting")
	case socketmode.EventTypeConnected:
		logger.Info("SocketListener:Connected")
	case socketmode.EventTypeConnectionError:
		logger.Warn("SocketListener:ConnectionError", "data", evt.Data)
	case socketmode.EventTypeInvalidAuth:
		logger.Error("SocketListener:InvalidAuth")

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok {
			logger.Warn("SocketListener:SlashCommand:UnexpectedPayload")
			return
		}
		l.ack(evt)
		if cmd.Command != l.command {
			logger.Warn("SocketListener:SlashCommand:UnknownCommand", "command", cmd.Command)
			return
		}
		sc := mapper.ToSlashCommand(cmd)
		l.dispatch(ctx, func(ctx context.Context) { l.handler.OnSlashCommand(ctx, sc) })

	case socketmode.EventTypeEventsAPI:
		event, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			logger.Warn("SocketListener:EventsAPI:UnexpectedPayload")
			return
		}
		l.ack(evt)
		if event.Type != slackevents.CallbackEvent {
			return
		}
		switch inner := event.InnerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			ev := mapper.ToMentionEvent(inner)
			l.dispatch(ctx, func(ctx context.Context) { l.handler.OnMention(ctx, ev) })
		case *slackevents.MessageEvent:
			ev := mapper.ToMessageEvent(inner)
			l.dispatch(ctx, func(ctx context.Context) { l.handler.OnDirectMessage(ctx, ev) })
		}

	case socketmode.EventTypeInteractive:
		// link buttons still send block_actions; nothing to do beyond the ack
		l.ack(evt)
	}
}

func (l *Listener) ack(evt socketmode.Event) {
	if evt.Request != nil {
		l.acker.Ack(*evt.Request)
	}
}

// dispatch detaches fn from ctx cancellation so a shutdown lets in-flight
// invocations finish their reply.
func (l *Listener) dispatch(ctx context.Context, fn func(context.Context)) {
	hctx := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn(hctx)
	}()
}
