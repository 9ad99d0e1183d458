package mux

import (
	"net/http"

	"holdem-trainer/pkg/holdem"
)

type sessionResponse struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	State *holdem.View `json:"state"`
}

func (m *Mux) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.Sessions())
	}
}

func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := m.pitBoss.NewSession()
		view, err := dealer.View(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{
			ID:    dealer.ID,
			Name:  dealer.Name,
			State: view,
		})
	}
}

func (m *Mux) getSessionID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := dealerFromContext(r)
		view, err := dealer.View(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			ID:    dealer.ID,
			Name:  dealer.Name,
			State: view,
		})
	}
}

func (m *Mux) deleteSessionID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.EndSession(dealerFromContext(r).ID); err != nil {
			writeDealerError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Mux) postSessionIDGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := dealerFromContext(r).NewGame(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func (m *Mux) postSessionIDHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := dealerFromContext(r).StartHand(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

type postActionPayload struct {
	Action holdem.Action `json:"action"`
	Amount int           `json:"amount"`
}

func (m *Mux) postSessionIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		view, err := dealerFromContext(r).Act(r.Context(), pp.Action, pp.Amount)
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
