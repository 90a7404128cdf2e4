package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"slack-meet-bot/core/config"
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/gcal"
	"slack-meet-bot/core/logger"
	"slack-meet-bot/core/middleware"
	"slack-meet-bot/modules/meeting"
	meetingservice "slack-meet-bot/modules/meeting/service"
	"slack-meet-bot/modules/slackbot"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

// Run loads configuration, wires every component and blocks until SIGINT or
// SIGTERM. Startup failures are returned; nothing is retried.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Environment: cfg.Server.Env,
		File:        cfg.Log.File,
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// token refreshes must keep working while in-flight replies drain
	baseCtx := context.Background()
	credentials, err := gcal.NewCredentialProvider(baseCtx, cfg.GoogleAPI.CredentialsFile, cfg.GoogleAPI.TokenFile)
	if err != nil {
		return err
	}
	calendarSvc, err := gcal.NewCalendarService(baseCtx, credentials.Client(baseCtx))
	if err != nil {
		return err
	}
	meetingSvc := meetingservice.NewMeetingService(calendarSvc, cfg)

	api := slack.New(cfg.Slack.BotToken, slack.OptionAppLevelToken(cfg.Slack.AppToken))
	botUserID := slackbot.ResolveBotUserID(ctx, api, cfg)

	e := newEcho()
	if cfg.MeetingAPIEnabled() {
		meeting.Init(e, meetingSvc, middleware.NewMiddleware(cfg))
	} else {
		logger.Info("Server:Run:MeetingAPIDisabled", "reason", "API_JWT_SECRET not set")
	}
	bot := slackbot.Init(e, api, meetingSvc, cfg, botUserID)

	logger.Info("Server:Run:Starting",
		"env", cfg.Server.Env,
		"slack_mode", cfg.Slack.Mode,
		"command", cfg.Slack.Command,
		"calendar_id", cfg.GoogleAPI.CalendarID,
		"http_port", cfg.Server.HTTPPort,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(":" + cfg.Server.HTTPPort); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return bot.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server:Run:ShuttingDown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		bot.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server:Run:Failed", "error", err)
		return err
	}
	logger.Info("Server:Run:Stopped")
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
