package mattermost

import "errors"

var (
	ErrNoWebhook  = errors.New("не указан webhook для уведомлений")
	ErrSendFailed = errors.New("не удалось отправить уведомление")
)
