package router

import (
	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/middleware"
	"slack-meet-bot/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

// MeetingRouter handles meeting routes
type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

// NewMeetingRouter creates a new router
func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

// Setup registers meeting routes (all protected)
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	meetingRoutes := v1.Group("/meetings", mw.AuthMiddleware(constants.ScopeMeetingsRead))
	meetingRoutes.GET("/:id", r.MeetingController.GetMeeting)
}
