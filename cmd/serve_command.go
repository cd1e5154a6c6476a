package main

import (
	"context"
	"errors"
	"net/http"
	"sport-reel-generator/config"
	"sport-reel-generator/infrastructure/gin_interface/controllers"
	"sport-reel-generator/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			app, err := newApplication(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			router, err := newRouter(app)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), app, router)
		},
	}
}

func newRouter(app *application) (*gin.Engine, error) {
	if app.config.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(app.logger))
	router.Use(middleware.RequestTimeout(app.config.Pipeline.RequestTimeout))

	if app.config.Store.Driver == config.FilesystemStoreDriver {
		router.Static("/artifacts", app.config.Store.LocalDir)
	}

	controllers.NewGenerationController(app.logger, app.pipeline, int64(app.config.Server.MaxPhotoBytes)).RegisterRoutes(router)
	controllers.NewVideoCatalogController(app.logger, app.catalog).RegisterRoutes(router)

	return router, nil
}

func serve(ctx context.Context, app *application, router *gin.Engine) error {
	server := &http.Server{
		Addr:    app.config.Server.Addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.InfoWithFields("http server listening", map[string]interface{}{
			"addr":       server.Addr,
			"store":      app.config.Store.Driver,
			"concurrent": app.config.Pipeline.Concurrent,
		})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(err, "graceful shutdown failed")
		return err
	}
	return nil
}
