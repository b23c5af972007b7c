package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/binbird1-hash/binbird-backend/internal/app"
	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/controllers"
	"github.com/binbird1-hash/binbird-backend/internal/middleware"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/routes"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/storage"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize binbird-backend:", err)
	}
	defer application.Close()

	profileRepo := repositories.NewUserProfileRepository(application.DB)
	clientRepo := repositories.NewClientRepository(application.DB)
	jobRepo := repositories.NewJobRepository(application.DB)
	logRepo := repositories.NewLogRepository(application.DB)
	requestRepo := repositories.NewPropertyRequestRepository(application.DB)
	prefRepo := repositories.NewPreferenceRepository(application.DB)
	portalTokenRepo := repositories.NewPortalTokenRepository(application.DB)
	resetRepo := repositories.NewPasswordResetRepository(application.DB)
	rateRepo := repositories.NewRateLimitRepository(application.DB)

	photoStore, err := storage.NewPhotoStore(context.Background(), storage.S3Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		utils.Logger.Fatal("Failed to create photo store:", err)
	}

	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	notifier := services.NewNotificationService(cfg, sgClient, twClient)

	openaiSvc := services.NewOpenAIService(cfg.OpenAIAPIKey)
	geocoder, err := services.NewGeocodeService(cfg.GMapsAPIKey)
	if err != nil {
		utils.Logger.Fatal("Failed to create geocoding client:", err)
	}

	accountService := services.NewAccountService(cfg, profileRepo, resetRepo, rateRepo, notifier)
	clientService := services.NewClientService(clientRepo, portalTokenRepo, geocoder)
	generationService := services.NewJobGenerationService(clientRepo, jobRepo)
	jobService := services.NewJobService(
		cfg,
		jobRepo,
		clientRepo,
		profileRepo,
		logRepo,
		prefRepo,
		photoStore,
		openaiSvc,
		notifier,
	)
	requestService := services.NewRequestService(requestRepo, profileRepo, clientService, notifier)
	portalService := services.NewPortalService(
		clientRepo,
		profileRepo,
		portalTokenRepo,
		logRepo,
		prefRepo,
		photoStore,
		notifier,
		cfg.AppUrl,
	)
	cleanupService := services.NewCleanupService(portalTokenRepo, resetRepo, rateRepo)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), profileRepo, clientRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	healthController := controllers.NewHealthController(application)
	accountController := controllers.NewAccountController(accountService, cfg)
	jobsController := controllers.NewJobsController(jobService, generationService)
	clientsController := controllers.NewClientsController(clientService, portalService)
	requestsController := controllers.NewRequestsController(requestService)
	logsController := controllers.NewLogsController(jobService)
	portalController := controllers.NewPortalController(portalService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, accountController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogout, accountController.LogoutHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthPasswordResetRequest, accountController.PasswordResetRequestHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthPasswordResetConfirm, accountController.PasswordResetConfirmHandler).Methods(http.MethodPost)

	// Any signed-in user
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	secured.HandleFunc(routes.Me, accountController.MeHandler).Methods(http.MethodGet)

	// Client accounts
	clientSecured := router.NewRoute().Subrouter()
	clientSecured.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRole(utils.RoleClient, utils.RoleAdmin),
	)
	clientSecured.HandleFunc(routes.Requests, requestsController.SubmitRequestHandler).Methods(http.MethodPost)
	clientSecured.HandleFunc(routes.Requests, requestsController.ListMyRequestsHandler).Methods(http.MethodGet)
	clientSecured.HandleFunc(routes.MyClients, clientsController.ListMyClientsHandler).Methods(http.MethodGet)

	// Staff run sheet
	staffSecured := router.NewRoute().Subrouter()
	staffSecured.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRole(utils.RoleStaff, utils.RoleAdmin),
	)
	staffSecured.HandleFunc(routes.JobsMy, jobsController.ListMyJobsHandler).Methods(http.MethodGet)
	staffSecured.HandleFunc(routes.JobsComplete, jobsController.CompleteJobHandler).Methods(http.MethodPost)

	// Admin portal
	adminSecured := router.NewRoute().Subrouter()
	adminSecured.Use(
		middleware.AuthMiddleware(cfg.RSAPublicKey),
		middleware.RequireRole(utils.RoleAdmin),
	)
	adminSecured.HandleFunc(routes.AdminClients, clientsController.CreateClientHandler).Methods(http.MethodPost)
	adminSecured.HandleFunc(routes.AdminClients, clientsController.ListClientsHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminClientByID, clientsController.GetClientHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminClientByID, clientsController.UpdateClientHandler).Methods(http.MethodPatch, http.MethodPut)
	adminSecured.HandleFunc(routes.AdminClientByID, clientsController.DeleteClientHandler).Methods(http.MethodDelete)
	adminSecured.HandleFunc(routes.AdminPhotoPreference, clientsController.SetPhotoPreferenceHandler).Methods(http.MethodPut)
	adminSecured.HandleFunc(routes.AdminPortalTokens, clientsController.IssuePortalTokenHandler).Methods(http.MethodPost)
	adminSecured.HandleFunc(routes.AdminJobs, jobsController.AdminListJobsHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminJobsGenerate, jobsController.GenerateJobsHandler).Methods(http.MethodPost)
	adminSecured.HandleFunc(routes.AdminRequests, requestsController.AdminListRequestsHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminRequestApprove, requestsController.ApproveRequestHandler).Methods(http.MethodPost)
	adminSecured.HandleFunc(routes.AdminRequestReject, requestsController.RejectRequestHandler).Methods(http.MethodPost)
	adminSecured.HandleFunc(routes.AdminLogs, logsController.ListLogsHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminLogPhoto, logsController.GetLogPhotoHandler).Methods(http.MethodGet)
	adminSecured.HandleFunc(routes.AdminLogByID, logsController.DeleteLogHandler).Methods(http.MethodDelete)

	// Client portal (token-scoped, no account needed)
	portal := router.NewRoute().Subrouter()
	portal.Use(middleware.PortalTokenMiddleware(portalTokenRepo))
	portal.HandleFunc(routes.PortalSummary, portalController.SummaryHandler).Methods(http.MethodGet)
	portal.HandleFunc(routes.PortalLogs, portalController.LogsHandler).Methods(http.MethodGet)
	portal.HandleFunc(routes.PortalPhotoPreferences, portalController.GetPhotoPreferenceHandler).Methods(http.MethodGet)
	portal.HandleFunc(routes.PortalPhotoPreferences, portalController.SetPhotoPreferenceHandler).Methods(http.MethodPut)

	c := cron.New()
	_, genErr := c.AddFunc("5 0 * * *", func() {
		if e := generationService.RunDailyGeneration(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled job generation failed")
		}
	})
	if genErr != nil {
		utils.Logger.WithError(genErr).Fatal("Failed to schedule daily job generation cron")
	}

	_, purgeErr := c.AddFunc("@every 1h", func() {
		if e := cleanupService.PurgeExpiredCredentials(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Credential purge failed")
		}
	})
	if purgeErr != nil {
		utils.Logger.WithError(purgeErr).Fatal("Failed to schedule credential purge cron")
	}

	_, rateErr := c.AddFunc("@every 10m", func() {
		if e := cleanupService.PurgeStaleRateLimits(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Rate-limit purge failed")
		}
	})
	if rateErr != nil {
		utils.Logger.WithError(rateErr).Fatal("Failed to schedule rate-limit purge cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Platform", "X-Device-ID", "X-Portal-Token"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("binbird-backend failed to start:", err)
	}
}
