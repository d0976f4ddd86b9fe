package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/models"
)

const iconURL = "https://mattermost.org/wp-content/uploads/2016/04/icon.png"

var _ infra.Notifier = (*mattermostNotifier)(nil)

type mattermostNotifier struct {
	logger     *zap.Logger
	webhook    string
	mode       string
	httpClient *http.Client
}

type payload struct {
	IconURL string `json:"icon_url"`
	Text    string `json:"text"`
}

func New(log *zap.Logger, cfg *config.Config) infra.Notifier {
	return &mattermostNotifier{
		logger:     log,
		webhook:    cfg.MattermostWebhook,
		mode:       cfg.NotifyMode,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send постит таблицу задач прогона в канал через входящий webhook.
// В режиме error уведомление уходит только при ошибках.
func (n *mattermostNotifier) Send(ctx context.Context, rep models.Report) error {
	if n.webhook == "" {
		return ErrNoWebhook
	}
	if n.mode == config.NotifyNever {
		return nil
	}
	if n.mode == config.NotifyOnError && rep.Errors == 0 {
		return nil
	}

	body, err := json.Marshal(payload{
		IconURL: iconURL,
		Text:    formatTable(rep),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: HTTP статус %d", ErrSendFailed, resp.StatusCode)
	}

	n.logger.Info("уведомление отправлено в mattermost")

	return nil
}

func formatTable(rep models.Report) string {
	var b strings.Builder
	b.WriteString("#### Отчет архивации за " + rep.Date.Format("02.01.2006") + "\n")
	b.WriteString("|Задача|Статус|\n")
	b.WriteString("|:-----------------------------|:-------------:|\n")

	for _, e := range rep.Events {
		b.WriteString("|")
		b.WriteString(e.Stage)
		b.WriteString(": ")
		b.WriteString(e.Message)
		b.WriteString("|")
		b.WriteString(statusSymbol(e.Severity))
		b.WriteString("|\n")
	}

	return b.String()
}

func statusSymbol(severity models.Severity) string {
	switch severity {
	case models.SeverityError:
		return ":x:"
	case models.SeverityWarning:
		return ":warning:"
	default:
		return ":white_check_mark:"
	}
}
