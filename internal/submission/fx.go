package submission

import (
	"github.com/formbridge/formbridge/internal/submission/repository"
	"github.com/formbridge/formbridge/internal/submission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("submission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
