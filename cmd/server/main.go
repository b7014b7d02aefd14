package main

import (
	"log"
	"net/http"
	"os"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/database"
	"carepro-gateway/internal/handlers"
	"carepro-gateway/internal/middleware"
	"carepro-gateway/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 CAREPRO GATEWAY STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("❌ FATAL: DATABASE_URL environment variable is required")
	}
	log.Println("✅ DATABASE_URL found")

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("❌ FATAL: Database connection failed: %v", err)
	}
	defer db.Close()

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ FATAL: Database migrations failed: %v", err)
	}

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("❌ FATAL: User seeding failed: %v", err)
	}

	// Care platform client - every job/booking/proposal read goes through it
	platform, err := careplatform.NewClientFromEnv()
	if err != nil {
		log.Fatalf("❌ FATAL: Care platform client init failed: %v", err)
	}
	log.Println("✅ Care platform client initialized")

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes (all require a signed-in carepro)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Auth status endpoint
			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Carepro app surface
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("carepro"))

				// Job discovery
				r.Get("/jobs/nearby", handlers.GetNearbyJobs(db, platform))
				r.Get("/jobs/matched", handlers.GetMatchedJobs(platform))
				r.Get("/jobs/{id}", handlers.GetJob(platform))

				// Booking lifecycle
				r.Get("/bookings", handlers.GetBookings(platform))
				r.Get("/bookings/{id}", handlers.GetBooking(platform))
				r.Post("/bookings/{id}/start", handlers.StartBooking(platform, wsHub))
				r.Post("/bookings/{id}/complete", handlers.CompleteBooking(platform, wsHub))
				r.Post("/bookings/{id}/cancel", handlers.CancelBooking(platform, wsHub))

				// Timesheets
				r.Get("/bookings/{id}/timesheet", handlers.GetTimesheet(platform))
				r.Post("/bookings/{id}/timesheet/checkin", handlers.CheckIn(platform))
				r.Post("/bookings/{id}/timesheet/checkout", handlers.CheckOut(platform))

				// Rate proposals
				r.Post("/proposals", handlers.CreateProposal(platform))
				r.Get("/proposals", handlers.GetProposals(platform))

				// Profile and offer preferences
				r.Get("/profile", handlers.GetProfile(platform))
				r.Put("/profile", handlers.UpdateProfile(platform))
				r.Get("/profile/availability", handlers.GetAvailability(db))
				r.Put("/profile/availability", handlers.UpdateAvailability(db, wsHub))
			})

			// Admin console
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))

				r.Get("/ws/status", handlers.GetConnectionStatus(wsHub))
			})
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ FATAL: Server failed to start: %v", err)
	}
}
