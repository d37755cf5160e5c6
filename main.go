package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hamedsk/gridstrike/api"
	"github.com/hamedsk/gridstrike/db"
	mc "github.com/hamedsk/gridstrike/models/connection"
)

const defaultPort = "9191"

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	// Analytics are optional; without a database url the relay still
	// serves groups, it just counts nothing.
	var querier db.Querier
	if psqlUrl := os.Getenv("PSQL_URL"); psqlUrl != "" {
		querier = db.NewAnalyticsQuerier(db.MustConnectToDb(psqlUrl))
	} else {
		log.Println("PSQL_URL not set; relay analytics disabled")
	}

	sessionManager := mc.NewGroupSessionManager()
	go sessionManager.CleanupPeriodically()

	rp := api.NewRequestProcessor(sessionManager, querier)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle("GET /broadcast", rp)

	log.Printf("listening to port %s...", port)
	log.Fatalln(http.ListenAndServe(":"+port, mux))
}
