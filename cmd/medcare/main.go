package main

import (
	"context"
	"log/slog"
	"os"

	"medcare/config"
	"medcare/internal/delivery"
	"medcare/internal/delivery/http"
	"medcare/internal/delivery/http/middleware"
	"medcare/internal/delivery/http/router/handler"
	"medcare/internal/infra/auth"
	"medcare/internal/infra/blob"
	logs "medcare/internal/infra/log"
	"medcare/internal/infra/notification"
	"medcare/internal/infra/payment"
	"medcare/internal/infra/persistence/postgres"
	"medcare/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAppointmentRepository,
			postgres.NewMedicalRecordRepository,
			postgres.NewDiagnosisRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			blob.New,
			notification.NewNotifier,
			payment.NewPaymentProcessor,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewAppointmentService,
			impl.NewRecordService,
			impl.NewDiagnosisService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewAppointmentHandler,
			handler.NewRecordHandler,
			handler.NewDiagnosisHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
