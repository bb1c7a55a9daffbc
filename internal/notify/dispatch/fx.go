package dispatch

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("notify.dispatch",
	fx.Provide(DefaultConfig),
	fx.Provide(NewDispatcher),
	fx.Provide(func(d *Dispatcher) Queue { return d }),
	fx.Invoke(runDispatcher),
)

func runDispatcher(lc fx.Lifecycle, d *Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go d.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
