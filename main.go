package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	app := &cli.Command{
		Name:  "miniblog",
		Usage: "Minimal blog server with a notification sidecar",
		Commands: []*cli.Command{
			serveCommand(sugar),
			initDBCommand(sugar),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		sugar.Fatalw("application error", "error", err)
	}
}

func serveCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the blog server",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadConfig()

			db, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := initDB(db); err != nil {
				return err
			}

			blog := NewBlog(cfg, db, logger)

			logger.Infow("server starting", "addr", cfg.Addr)
			return http.ListenAndServe(cfg.Addr, blog.routes())
		},
	}
}

func initDBCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "initdb",
		Usage: "Create the entries table",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadConfig()

			db, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := initDB(db); err != nil {
				return err
			}

			logger.Infow("initialized the database", "path", cfg.DBPath)
			return nil
		},
	}
}

func (b *Blog) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", b.Home)
	r.Post("/add", b.Add)
	r.Get("/login", b.Login)
	r.Post("/login", b.Login)
	r.Get("/logout", b.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/search", b.Search)
	})

	return r
}
