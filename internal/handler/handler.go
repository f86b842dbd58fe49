package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/boxcar-notification-service/internal/service"
	"github.com/koungkub/boxcar-notification-service/pkg/boxcar"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("handler",
	fx.Provide(
		NewNotificationHandler,
	),
)

type Notification struct {
	services service.NotificationProvider
	logger   *zap.Logger
}

type NotificationParams struct {
	fx.In

	Services service.NotificationProvider
	Logger   *zap.Logger `optional:"true"`
}

func NewNotificationHandler(params NotificationParams) *Notification {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notification{
		services: params.Services,
		logger:   logger,
	}
}

func (n *Notification) SubscribeHandler(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	result, err := n.services.Subscribe(c.Request.Context(), c.Param("provider"), req.Email)
	n.respond(c, result, err)
}

func (n *Notification) NotifyHandler(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	result, err := n.services.Notify(
		c.Request.Context(),
		c.Param("provider"),
		req.Email,
		req.Message,
		req.options(),
	)
	n.respond(c, result, err)
}

func (n *Notification) BroadcastHandler(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	result, err := n.services.Broadcast(
		c.Request.Context(),
		c.Param("provider"),
		req.Message,
		req.options(),
	)
	n.respond(c, result, err)
}

func (n *Notification) respond(c *gin.Context, result boxcar.Result, err error) {
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, GetProviderError(err))
			return
		}
		n.logger.Error("resolve provider credential", zap.String("provider", c.Param("provider")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, GetInternalError(err))
		return
	}

	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
