package api

import "net/http"

// Router builds the /api/v1 route table for srv.
func (srv *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/new_game", srv.CreateGame)
	mux.HandleFunc("GET /api/v1/game/{uuid}", srv.GetGame)
	mux.HandleFunc("POST /api/v1/take_turn", srv.TakeTurn)
	return withRequestLogging(withCORS(mux))
}

// withCORS permits any origin, matching the permissive CORS layer a local
// development server and a separately-hosted client both need.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
