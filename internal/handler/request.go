package handler

import "github.com/koungkub/boxcar-notification-service/pkg/boxcar"

type SubscribeRequest struct {
	Email string `json:"email"`
}

type NotificationFields struct {
	FromName  string `json:"from_name"`
	ID        string `json:"id"`
	SourceURL string `json:"source_url"`
	IconURL   string `json:"icon_url"`
}

func (f NotificationFields) options() boxcar.NotificationOptions {
	return boxcar.NotificationOptions{
		FromName:  f.FromName,
		ID:        f.ID,
		SourceURL: f.SourceURL,
		IconURL:   f.IconURL,
	}
}

type NotifyRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	NotificationFields
}

type BroadcastRequest struct {
	Message string `json:"message"`
	NotificationFields
}
