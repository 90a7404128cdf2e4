package controller

import (
	"strings"

	"slack-meet-bot/core/controller"
	"slack-meet-bot/core/errors"
	"slack-meet-bot/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController exposes read access to meetings the bot created
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

// NewMeetingController creates a new controller
func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// GetMeeting handles GET /api/v1/meetings/:id
// @Summary Get a meeting
// @Description Returns a meeting previously created by the bot. Events the bot did not create are reported as not found.
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Calendar event ID"
// @Success 200 {object} dto.MeetingResult
// @Failure 401 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Failure 502 {object} errors.AppError
// @Router /api/v1/meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	meetingID := strings.TrimSpace(ctx.Param("id"))
	if meetingID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.MeetingService.GetMeeting(ctx.Request().Context(), meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
