package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeCreator struct {
	got []*twilioApi.CreateMessageParams
	err error
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = append(f.got, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioNotifier_ChoosesChannel(t *testing.T) {
	fake := &fakeCreator{}
	n := &TwilioNotifier{api: fake, from: "+15550001111", whatsAppFrom: "+15550002222", log: zap.NewNop()}

	r, err := n.Send(context.Background(), Message{To: "+5215512345678", Body: "hola"})
	require.NoError(t, err)
	assert.Equal(t, ChannelWhatsApp, r.Channel)
	assert.Equal(t, "SM123", r.ID)

	r, err = n.Send(context.Background(), Message{To: "5512345678", Body: "hola"})
	require.NoError(t, err)
	assert.Equal(t, ChannelSMS, r.Channel)

	require.Len(t, fake.got, 2)
	assert.Equal(t, "whatsapp:+5215512345678", *fake.got[0].To)
	assert.Equal(t, "whatsapp:+15550002222", *fake.got[0].From)
	assert.Equal(t, "5512345678", *fake.got[1].To)
	assert.Equal(t, "+15550001111", *fake.got[1].From)
	assert.Equal(t, "hola", *fake.got[1].Body)
}

func TestTwilioNotifier_SMSWithoutWhatsAppSender(t *testing.T) {
	fake := &fakeCreator{}
	n := &TwilioNotifier{api: fake, from: "+15550001111", log: zap.NewNop()}

	r, err := n.Send(context.Background(), Message{To: "+5215512345678", Body: "hola"})
	require.NoError(t, err)
	assert.Equal(t, ChannelSMS, r.Channel)
	assert.Equal(t, "+5215512345678", *fake.got[0].To)
}

func TestTwilioNotifier_Errors(t *testing.T) {
	fake := &fakeCreator{err: errors.New("twilio down")}
	n := &TwilioNotifier{api: fake, log: zap.NewNop()}

	_, err := n.Send(context.Background(), Message{To: " "})
	assert.ErrorIs(t, err, ErrEmptyRecipient)
	assert.Empty(t, fake.got)

	_, err = n.Send(context.Background(), Message{To: "+52155", Body: "x"})
	assert.EqualError(t, err, "twilio down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Send(ctx, Message{To: "+52155"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	r, err := n.Send(context.Background(), Message{To: "+52155", Body: "hola"})
	require.NoError(t, err)
	assert.Equal(t, ChannelLog, r.Channel)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "+52155", logs.All()[0].ContextMap()["to"])

	_, err = n.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrEmptyRecipient)
}

func TestNewTwilioNotifier(t *testing.T) {
	n := NewTwilioNotifier("AC123", "token", "+1555", "", nil)
	assert.NotNil(t, n.api)
}
