package rest

import "net/http"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /healthz", s.health)

	// accounts, all protected
	mux.Handle("POST /user", s.requireAuth(http.HandlerFunc(s.createUser)))
	mux.Handle("GET /user/{id}", s.requireAuth(http.HandlerFunc(s.getUser)))
	mux.Handle("PUT /user/{id}", s.requireAuth(http.HandlerFunc(s.updateUser)))
	mux.Handle("DELETE /user/{id}", s.requireAuth(http.HandlerFunc(s.deleteUser)))
	mux.Handle("GET /users", s.requireAuth(http.HandlerFunc(s.listUsers)))

	// posts: reads are public, writes need a token
	mux.Handle("POST /post", s.requireAuth(http.HandlerFunc(s.createPost)))
	mux.HandleFunc("GET /post/{id}", s.getPost)
	mux.Handle("PUT /post/{id}", s.requireAuth(http.HandlerFunc(s.updatePost)))
	mux.Handle("DELETE /post/{id}", s.requireAuth(http.HandlerFunc(s.deletePost)))
	mux.HandleFunc("GET /posts", s.listPosts)

	return s.withRequestID(s.accessLog(s.recoverer(limitBody(maxBodyBytes, mux))))
}
