package notify

import (
	"github.com/bwmarrin/snowflake"
	"github.com/formbridge/formbridge/internal/config"
	"github.com/formbridge/formbridge/internal/notify/dispatch"
	"github.com/formbridge/formbridge/internal/notify/provider/twilio"
	"github.com/formbridge/formbridge/internal/notify/provider/whatsapp"
	"github.com/formbridge/formbridge/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notify",
	fx.Provide(newSnowflakeNode),
	fx.Provide(provideNotifier),
	fx.Provide(func(n *Notifier) dispatch.Notifier { return n }),
	dispatch.Module,
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Holder  *config.NotifyConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

// provideNotifier builds a sender per channel with credentials present.
// Channels missing credentials simply never join the chain.
func provideNotifier(p Params) *Notifier {
	var senders []Sender

	if p.Config.Twilio.Configured() {
		senders = append(senders, twilio.New(twilio.Config{
			AccountSID: p.Config.Twilio.AccountSID,
			AuthToken:  p.Config.Twilio.AuthToken,
			FromNumber: p.Config.Twilio.FromNumber,
		}))
	}
	if p.Config.WhatsApp.Configured() {
		senders = append(senders, whatsapp.New(whatsapp.Config{
			Token:         p.Config.WhatsApp.Token,
			PhoneNumberID: p.Config.WhatsApp.PhoneNumberID,
		}))
	}

	if len(senders) == 0 {
		p.Log.Warn("no messaging provider credentials configured, notifications disabled")
	}

	return NewNotifier(p.Log, senders, p.Holder, p.Config.RecipientNumber, p.Metrics)
}
