// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/naijavote/auth"
	"github.com/danielhkuo/naijavote/cliparse"
	"github.com/danielhkuo/naijavote/encryption"
	"github.com/danielhkuo/naijavote/handlers"
	"github.com/danielhkuo/naijavote/ledger"
	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/registry"
	"github.com/danielhkuo/naijavote/tally"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Core wiring: the ballot sealer's key is injected here, once
	sealer := encryption.NewSealer(cfg.VoteEncryptionKey)
	reg := registry.New(db)
	engine := ledger.NewEngine(db, sealer)
	tabulator := tally.New(db)

	authHandler := handlers.NewAuthHandler(auth.NewService(db, cfg))
	electionHandler := handlers.NewElectionHandler(reg)
	voteHandler := handlers.NewVoteHandler(engine, tabulator)

	authLimit := middleware.AuthLimiter()
	voteLimit := middleware.VoteLimiter()

	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Protect(db, cfg, h)
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return protect(middleware.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authLimit.Wrap(authHandler.Register)))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authLimit.Wrap(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/refresh", middleware.WithLogging(authHandler.Refresh))
	mux.HandleFunc("POST /api/auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/me", middleware.WithLogging(protect(authHandler.Me)))

	// Elections (reads public, mutations admin only)
	mux.HandleFunc("GET /api/elections", middleware.WithLogging(electionHandler.List))
	mux.HandleFunc("GET /api/elections/{id}", middleware.WithLogging(electionHandler.Get))
	mux.HandleFunc("POST /api/elections", middleware.WithLogging(admin(electionHandler.Create)))
	mux.HandleFunc("PATCH /api/elections/{id}/status", middleware.WithLogging(admin(electionHandler.UpdateStatus)))
	mux.HandleFunc("POST /api/elections/{id}/candidates", middleware.WithLogging(admin(electionHandler.AddCandidate)))
	mux.HandleFunc("DELETE /api/elections/candidates/{candidateId}", middleware.WithLogging(admin(electionHandler.RemoveCandidate)))

	// Votes
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(protect(voteLimit.Wrap(voteHandler.CastVote))))
	mux.HandleFunc("GET /api/votes/{electionId}/results", middleware.WithLogging(admin(voteHandler.GetResults)))
	mux.HandleFunc("GET /api/votes/{electionId}/verify", middleware.WithLogging(admin(voteHandler.VerifyChain)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		// "GET /" is the catch-all pattern; anything but the root itself
		// is an unknown route
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
			return
		}
		w.Write([]byte("NaijaVote API v1"))
	})

	return mux
}
