package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"

	"holdem-trainer/pkg/room"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	sessionRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/session").Handler(this.getSession())
		r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())
	}

	// requires an open session
	{
		r := this.Router.PathPrefix("/session/{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		r.Use(this.sessionMiddleware)
		this.sessionRouter = r

		r.Methods(http.MethodGet).Path("").Handler(this.getSessionID())
		r.Methods(http.MethodDelete).Path("").Handler(this.deleteSessionID())
		r.Methods(http.MethodPost).Path("/game").Handler(this.postSessionIDGame())
		r.Methods(http.MethodPost).Path("/hand").Handler(this.postSessionIDHand())
		r.Methods(http.MethodPost).Path("/action").Handler(this.postSessionIDAction())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getSessionIDWS())
	}

	return this
}

func (m *Mux) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Dealer(gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func dealerFromContext(r *http.Request) *room.Dealer {
	return r.Context().Value(ctxDealerKey).(*room.Dealer)
}
