package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/ttshub/internal/api/handlers"
	"github.com/nikhilbhutani/ttshub/internal/api/middleware"
	"github.com/nikhilbhutani/ttshub/internal/audio"
	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/cache"
	"github.com/nikhilbhutani/ttshub/internal/catalog"
	"github.com/nikhilbhutani/ttshub/internal/config"
	"github.com/nikhilbhutani/ttshub/internal/history"
	"github.com/nikhilbhutani/ttshub/internal/jobs"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
	"github.com/nikhilbhutani/ttshub/internal/queue"
)

type Router struct {
	mux      *chi.Mux
	db       *pgxpool.Pool
	redis    *redis.Client
	cfg      *config.Config
	registry *backend.Registry
	store    *audio.Store
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, registry *backend.Registry, store *audio.Store) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		db:       db,
		redis:    rdb,
		cfg:      cfg,
		registry: registry,
		store:    store,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.db, rt.redis, rt.registry)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services. The database and Redis are optional: without
	// them history and async synthesis degrade, synthesis itself does not.
	var hist *history.Store
	if rt.db != nil {
		hist = history.NewStore(rt.db)
	}

	var (
		catalogCache *cache.Cache
		jobStore     *jobs.Store
		queueClient  *queue.Client
	)
	if rt.redis != nil {
		catalogCache = cache.NewCache(rt.redis)
		jobStore = jobs.NewStore(catalogCache)
		queueClient = queue.NewClient(rt.cfg.Redis)
	}

	var histDep orchestrator.History
	if hist != nil {
		histDep = hist
	}
	orch := orchestrator.New(rt.registry, rt.store, histDep, rt.cfg.Synthesis.Timeout)
	cat := catalog.NewService(rt.registry, catalogCache)

	synthH := handlers.NewSynthesisHandler(orch, cat, rt.registry, hist, queueClient, jobStore, rt.cfg.Synthesis.HistoryPage)

	r.Get("/", handlers.Index)
	r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(http.Dir(rt.store.Dir()))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/synthesize", synthH.Synthesize)
		r.Post("/synthesize/async", synthH.SynthesizeAsync)
		r.Get("/jobs/{id}", synthH.JobStatus)
		r.Get("/voices", synthH.Voices)
		r.Get("/backends", synthH.Backends)
		r.Get("/history", synthH.History)
	})

	return r
}
