// ABOUTME: HTTP server with embedded dashboard template and JSON API
// ABOUTME: Serves the demo workspace, the live-mode tables and the AI endpoints
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/harperreed/growthdesk/ai"
	"github.com/harperreed/growthdesk/db"
	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/viz"
)

//go:embed templates/*
var templatesFS embed.FS

// Deps are the collaborators a Server is built from. DB may be nil, in which
// case the live-mode endpoints answer 503.
type Deps struct {
	Store     *demo.Store
	FollowUps *demo.FollowUps
	Simulator *demo.Simulator
	DB        *db.DB
	AI        *ai.Client
	Logger    *log.Logger
}

type Server struct {
	store     *demo.Store
	followUps *demo.FollowUps
	sim       *demo.Simulator
	db        *db.DB
	ai        *ai.Client
	logger    *log.Logger
	templates *template.Template
	upgrader  websocket.Upgrader
}

func NewServer(deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("web: store is required")
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.FollowUps == nil {
		deps.FollowUps = demo.NewFollowUps(deps.Store)
	}
	if deps.Simulator == nil {
		deps.Simulator = demo.NewSimulator(deps.Store)
	}
	if deps.AI == nil {
		deps.AI = ai.NewClient("", "", "", deps.Logger)
	}

	funcMap := template.FuncMap{
		"thousands": func(v int64) int64 { return v / 1000 },
		"ago": func(t time.Time) string {
			return t.Format("Jan 2 15:04")
		},
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		store:     deps.Store,
		followUps: deps.FollowUps,
		sim:       deps.Simulator,
		db:        deps.DB,
		ai:        deps.AI,
		logger:    deps.Logger.WithPrefix("web"),
		templates: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/", s.handleDashboard)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/demo", s.demoRoutes)

	r.Group(func(r chi.Router) {
		r.Use(s.requireDB)
		r.Get("/api/leads", s.handle(s.listLeads))
		r.Patch("/api/leads", s.handle(s.patchLead))
		r.Get("/api/deals", s.handle(s.listDeals))
		r.Get("/api/clients", s.handle(s.listClients))
		r.Post("/api/clients", s.handle(s.createClient))
		r.Get("/api/messages", s.handle(s.listMessages))
		r.Post("/api/messages", s.handle(s.createMessage))
		r.Get("/api/marketing", s.handle(s.listMarketing))
		r.Get("/api/settings", s.handle(s.getSettings))
		r.Patch("/api/settings", s.handle(s.patchSettings))
	})

	r.Route("/api/ai", s.aiRoutes)

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (s *Server) requireDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.db == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "database not configured"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	now := s.store.Clock().Now()

	data := map[string]any{
		"Title":     "Dashboard",
		"Stats":     viz.GenerateDashboardStats(st, now),
		"State":     st,
		"FollowUps": st.ScheduledFollowUps,
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.Error("template error", "template", "dashboard.html", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
