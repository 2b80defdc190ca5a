package rest

import (
	"net/http"

	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in services.NewAccount
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.users.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insertedResponse{InsertedID: id})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	account, err := s.users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var in services.AccountUpdate
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	account, err := s.users.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "User successfully deleted!")
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
