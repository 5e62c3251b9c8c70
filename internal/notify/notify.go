// Package notify отправляет клиентам короткие сообщения.
package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/logger"
)

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelLog      Channel = "log"
)

var ErrEmptyRecipient = errors.New("notify: empty recipient")

type Message struct {
	To   string
	Body string
}

// Receipt — что вернул провайдер.
type Receipt struct {
	Channel Channel
	ID      string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// messageCreator — часть twilio Api, которую мы используем.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier: WhatsApp для номеров в E.164 (с «+») при заданном
// WhatsApp-отправителе, иначе SMS.
type TwilioNotifier struct {
	api          messageCreator
	from         string
	whatsAppFrom string
	log          *zap.Logger
}

func NewTwilioNotifier(accountSID, authToken, from, whatsAppFrom string, log *zap.Logger) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from, whatsAppFrom: whatsAppFrom, log: logger.OrNop(log)}
}

func (n *TwilioNotifier) Send(ctx context.Context, msg Message) (Receipt, error) {
	phone := strings.TrimSpace(msg.To)
	if phone == "" {
		return Receipt{}, ErrEmptyRecipient
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(msg.Body)

	channel := ChannelSMS
	if strings.HasPrefix(phone, "+") && n.whatsAppFrom != "" {
		channel = ChannelWhatsApp
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + n.whatsAppFrom)
	} else {
		params.SetTo(phone)
		params.SetFrom(n.from)
	}

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		n.log.Warn("twilio send failed", zap.String("channel", string(channel)), zap.Error(err))
		return Receipt{}, err
	}

	receipt := Receipt{Channel: channel}
	if resp != nil && resp.Sid != nil {
		receipt.ID = *resp.Sid
	}
	return receipt, nil
}

// LogNotifier только пишет сообщение в лог; используется без учётных данных Twilio.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: logger.OrNop(log)}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) (Receipt, error) {
	if strings.TrimSpace(msg.To) == "" {
		return Receipt{}, ErrEmptyRecipient
	}
	n.log.Info("notification (dry run)", zap.String("to", msg.To), zap.String("body", msg.Body))
	return Receipt{Channel: ChannelLog}, nil
}
