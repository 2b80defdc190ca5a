package rest

import (
	"net/http"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in models.Post
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.posts.Create(r.Context(), &in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insertedResponse{InsertedID: id})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var in models.Post
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	post, err := s.posts.Update(r.Context(), r.PathValue("id"), &in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Post successfully deleted!")
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	list, err := s.posts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
