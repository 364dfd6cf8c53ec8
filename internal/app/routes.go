package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-api/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes(basePath string) {
	game := handlers.NewGameHandler(a.logger, a.service, a.ws)

	a.router.HandleFunc("POST "+basePath+"/api/new", game.NewGame)
	a.router.HandleFunc("POST "+basePath+"/api/turn", game.Turn)
	a.router.HandleFunc("GET "+basePath+"/api/game/{id}", game.Fetch)
	a.router.HandleFunc("GET "+basePath+"/api/game/{id}/connect", game.Connect)
}
