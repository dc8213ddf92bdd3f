package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/lmoretti/mockview/internal/adapters/http"
	"github.com/lmoretti/mockview/internal/adapters/llm"
	firestorestore "github.com/lmoretti/mockview/internal/adapters/storage/firestore"
	memstore "github.com/lmoretti/mockview/internal/adapters/storage/memory"
	sqlitestore "github.com/lmoretti/mockview/internal/adapters/storage/sqlite"
	"github.com/lmoretti/mockview/internal/app/interview"
	"github.com/lmoretti/mockview/internal/config"
	"github.com/lmoretti/mockview/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Model gateway: mock for dev, Gemini otherwise
	var (
		gateway domain.ModelGateway
		err     error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK model gateway")
		gateway = llm.NewMockGateway()
	} else {
		log.Println("[LLM] Using Gemini model gateway")
		gateway, err = llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini gateway: %v", err)
		}
	}

	// Storage: Firestore, SQLite or Memory
	var store domain.InterviewStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore

	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		sqlStore, err := sqlitestore.NewStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore

	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewInterviewStore()
	}

	svc := interview.NewService(gateway, store)
	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("mockview API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
