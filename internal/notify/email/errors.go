package email

import "errors"

var (
	ErrNoRecipients = errors.New("не указаны получатели письма")
	ErrBadAddress   = errors.New("некорректный почтовый адрес")
	ErrSendFailed   = errors.New("не удалось отправить письмо")
)
