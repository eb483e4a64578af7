package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/audience-cli/internal/catalog"
	"github.com/sells-group/audience-cli/internal/match"
	"github.com/sells-group/audience-cli/internal/model"
	"github.com/sells-group/audience-cli/internal/pipeline"
)

const maxBodyBytes = 10 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for parsing, matching and scoring",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		parser, err := newParser(parserOptionsFromConfig())
		if err != nil {
			return err
		}

		var source catalog.Source
		switch cfg.Catalog.Driver {
		case "json":
			source = catalog.JSONFile{Path: cfg.Catalog.Path}
		case "sqlite":
			st, err := catalog.OpenExisting(ctx, cfg.Catalog.Path)
			if err != nil {
				zap.L().Warn("catalog unavailable, /v1/match requires an inline snapshot",
					zap.String("path", cfg.Catalog.Path),
					zap.Error(err),
				)
			} else {
				defer st.Close() //nolint:errcheck
				source = st
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(parser, source, cfg.Server.CORSOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// parseBody is the /v1/parse request.
type parseBody struct {
	Document string `json:"document"`
}

// matchBody is the /v1/match request. Existing, when present, replaces the
// server's catalog for this request.
type matchBody struct {
	Name     string                 `json:"name"`
	Nickname string                 `json:"nickname"`
	Existing []model.ExistingRecord `json:"existing"`
}

// buildRouter wires the API routes. A nil source means requests to
// /v1/match must carry their own snapshot.
func buildRouter(parser *pipeline.Parser, source catalog.Source, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", func(w http.ResponseWriter, r *http.Request) {
			var req parseBody
			if !decodeBody(w, r, &req) {
				return
			}
			writeResponse(w, http.StatusOK, parser.ParseDocument(req.Document))
		})

		r.Post("/match", func(w http.ResponseWriter, r *http.Request) {
			var req matchBody
			if !decodeBody(w, r, &req) {
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, "name is required")
				return
			}

			existing := req.Existing
			switch {
			case existing != nil:
				if err := catalog.Validate(existing); err != nil {
					writeError(w, http.StatusUnprocessableEntity, err.Error())
					return
				}
			case source != nil:
				records, err := source.Records(r.Context())
				if err != nil {
					zap.L().Error("load catalog", zap.Error(err))
					writeError(w, http.StatusInternalServerError, "catalog unavailable")
					return
				}
				existing = records
			default:
				writeError(w, http.StatusBadRequest, "existing is required: no catalog configured")
				return
			}

			writeResponse(w, http.StatusOK, match.Match(req.Name, req.Nickname, existing))
		})

		r.Post("/score", func(w http.ResponseWriter, r *http.Request) {
			var profiles []model.ParsedProfile
			if !decodeBody(w, r, &profiles) {
				return
			}
			if profiles == nil {
				profiles = []model.ParsedProfile{}
			}
			parser.Rescore(profiles)
			writeResponse(w, http.StatusOK, profiles)
		})
	})

	return r
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeResponse(w, code, map[string]string{"error": msg})
}
