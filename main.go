package main

import (
	auth "Glasschek/internal/auth"
	batch "Glasschek/internal/calc/batch"
	compare "Glasschek/internal/calc/compare"
	design "Glasschek/internal/calc/design"
	factors "Glasschek/internal/calc/factors"
	importer "Glasschek/internal/calc/importer"
	modulus "Glasschek/internal/calc/modulus"
	report "Glasschek/internal/calc/report"
	thickness "Glasschek/internal/calc/thickness"
	interlayer "Glasschek/internal/interlayer"
	profile "Glasschek/internal/profile"
	repo "Glasschek/internal/repo"
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB, table *interlayer.Table) {
	userRepo := repo.NewPostgresDB(db)
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/history", profileH.History).Methods("GET")

	designH := &design.Handler{Table: table, Repo: userRepo}
	thicknessH := &thickness.Handler{}
	factorsH := &factors.Handler{}
	modulusH := &modulus.Handler{Table: table}
	compareH := &compare.Handler{Table: table}
	batchH := &batch.Handler{Table: table}
	importerH := &importer.Handler{Table: table}
	reportH := &report.Handler{Table: table}

	secureApi.HandleFunc("/tools/design/calc", designH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/design/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/design/import", importerH.LoadCases).Methods("POST")
	secureApi.HandleFunc("/tools/thickness/calc", thicknessH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/factors/resolve", factorsH.Resolve).Methods("POST")
	secureApi.HandleFunc("/tools/interlayer/modulus", modulusH.Query).Methods("POST")
	secureApi.HandleFunc("/tools/interlayer/products", modulusH.Products).Methods("GET")
	secureApi.HandleFunc("/tools/interlayer/compare", compareH.Compare).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment")
	}

	workbook := os.Getenv("INTERLAYER_DB")
	if workbook == "" {
		workbook = "data/Interlayer_E(t)_Database.xlsx"
	}
	table, err := interlayer.LoadWorkbook(workbook)
	if err != nil {
		log.Fatalf("Interlayer dataset error: %v", err)
	}
	log.Printf("Loaded interlayer dataset: %d products", len(table.Products()))

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db, table)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
