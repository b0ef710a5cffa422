// Command hyperchess serves the HTTP game API described by SPEC_FULL.md's
// HTTP layer: new_game, game/{uuid}, take_turn, backed by an in-memory
// game registry and one shared transposition table.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/MichaelMcCulloch/hyperchess-sub000/api"
	"github.com/MichaelMcCulloch/hyperchess-sub000/config"
)

func main() {
	cfg := config.Load()
	srv := api.NewServer(cfg)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.API.Port)
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
