package meeting

import (
	"slack-meet-bot/core/middleware"
	"slack-meet-bot/modules/meeting/controller"
	"slack-meet-bot/modules/meeting/router"
	"slack-meet-bot/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init registers the meeting lookup routes on top of an already built service
func Init(e *echo.Echo, svc service.MeetingServiceInterface, mw *middleware.Middleware) {
	ctrl := controller.NewMeetingController(svc)
	rtr := router.NewMeetingRouter(ctrl)

	rtr.Setup(e, mw)
}
