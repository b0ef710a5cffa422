package api

import (
	"time"

	"github.com/MichaelMcCulloch/hyperchess-sub000/game"
)

// botMovePause separates consecutive computer moves in a computer-vs-
// computer game so spectators can follow along, mirroring the polling
// cadence of the original bot-turn loop.
const botMovePause = 500 * time.Millisecond

// runBotMoves drives every consecutive computer-controlled turn for the
// session named id, stopping as soon as it's a human seat's turn or the
// game has ended. It is always launched in its own goroutine so a human's
// take_turn request never blocks on engine search time.
func (srv *Server) runBotMoves(id string) {
	session, ok := srv.Store.get(id)
	if !ok {
		return
	}

	for {
		session.mu.Lock()
		if session.Game.Status != game.InProgress {
			session.mu.Unlock()
			return
		}

		current := session.Game.Turn
		bot := session.strategyFor(current)
		if bot == nil {
			session.mu.Unlock()
			return
		}

		b := session.Game.Board.Clone()
		session.mu.Unlock()

		m, ok := bot.ChooseMove(b, current)
		if !ok {
			return
		}

		session.mu.Lock()
		if session.Game.Status != game.InProgress || session.Game.Turn != current {
			session.mu.Unlock()
			return
		}
		_, _ = session.Game.PlayTurn(m)
		status := session.Game.Status
		session.mu.Unlock()

		if status != game.InProgress {
			return
		}
		time.Sleep(botMovePause)
	}
}
