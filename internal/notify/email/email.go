package email

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/models"
)

var _ infra.Notifier = (*emailNotifier)(nil)

type emailNotifier struct {
	logger *zap.Logger
	cfg    *config.Config
}

func New(log *zap.Logger, cfg *config.Config) infra.Notifier {
	return &emailNotifier{
		logger: log,
		cfg:    cfg,
	}
}

// Send отправляет сводку прогона по SMTP. К письму прикладывается файл
// лога, если это включено в конфигурации.
func (n *emailNotifier) Send(ctx context.Context, rep models.Report) error {
	if len(n.cfg.EmailTo) == 0 {
		return ErrNoRecipients
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.EmailFrom); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAddress, err)
	}
	if err := msg.To(n.cfg.EmailTo...); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAddress, err)
	}

	msg.Subject(n.cfg.EmailTitle + ": " + subjectSuffix(rep))
	msg.SetBodyString(mail.TypeTextPlain, formatBody(rep))

	if n.cfg.IncludeLog {
		if _, err := os.Stat(n.cfg.LogFile); err == nil {
			attachName := "log_file_" + rep.Date.Format("02_01_2006") + ".txt"
			msg.AttachFile(n.cfg.LogFile, mail.WithFileName(attachName))
		} else {
			n.logger.Warn("файл лога не найден, письмо уйдет без вложения",
				zap.String("path", n.cfg.LogFile),
			)
		}
	}

	client, err := mail.NewClient(n.cfg.EmailHost,
		mail.WithPort(n.cfg.EmailPort),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.EmailFrom),
		mail.WithPassword(n.cfg.EmailPassword),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	n.logger.Info("отчет отправлен по почте", zap.Strings("to", n.cfg.EmailTo))

	return nil
}

func subjectSuffix(rep models.Report) string {
	if rep.Errors > 0 {
		return fmt.Sprintf("завершено с ошибками (%d)", rep.Errors)
	}
	return fmt.Sprintf("завершено успешно, предупреждений: %d", rep.Warnings)
}

func formatBody(rep models.Report) string {
	var b strings.Builder
	for _, e := range rep.Events {
		b.WriteString(string(e.Severity))
		b.WriteString(": ")
		b.WriteString(e.Stage)
		b.WriteString(": ")
		b.WriteString(e.Message)
		b.WriteString("\n")
	}
	return b.String()
}
