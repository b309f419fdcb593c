package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	intconfig "cmsadmin/internal/config"
	router "cmsadmin/internal/http"
	"cmsadmin/internal/http/handlers"
	"cmsadmin/internal/repositories"
	"cmsadmin/internal/services"
	"cmsadmin/internal/upload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if err := env.ValidateServe(); err != nil {
		return err
	}

	db, err := intconfig.OpenDB(ctx, env.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	operators := repositories.OperatorRepository{DB: db}
	if err := operators.EnsureSchema(ctx); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: env.RequestTimeout}
	token := func(context.Context) string { return env.CMSToken }
	gql := repositories.GraphQLClient{Endpoint: env.GraphQLURL, HTTP: httpClient, Token: token}
	uploader := services.MeteredUploader{Next: upload.Client{
		Endpoint:    env.UploadEndpoint(),
		AssetDomain: env.AssetDomain,
		HTTP:        httpClient,
		Token:       token,
	}}

	catalog := services.DefaultCatalog(env.Operations)
	screens := services.NewScreens(catalog, services.Deps{
		GraphQL:       gql,
		Forms:         services.FormService{Uploader: uploader},
		Notifications: env.NotificationCapacity,
		Logger:        logger,
	})
	defer screens.CloseAll()
	expiryCtx, stopExpiry := context.WithCancel(ctx)
	defer stopExpiry()
	go screens.RunExpiry(expiryCtx, env.ScreenIdleTTL)

	r := router.NewRouter(router.Deps{
		Logger:         logger,
		AllowedOrigins: env.CORSAllowedOrigins,
		System:         handlers.System{DB: db, Version: version},
		Auth: services.AuthService{
			Store:  operators,
			Secret: []byte(env.JWTSecret),
			TTL:    env.TokenTTL,
		},
		Catalog:    catalog,
		Screens:    screens,
		References: services.NewReferenceCache(services.GraphQLReferenceSources(gql), logger),
		Uploader:   uploader,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", displayAddr(env.AppAddr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped", zap.Int("open_screens", screens.Len()))
	return nil
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
