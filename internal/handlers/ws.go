package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-api/internal/mines"
)

const wsReadLimit = 4096

type wsCommand string

const (
	wsFetch wsCommand = "g"
	wsOpen  wsCommand = "o"
)

var commandNargs = map[wsCommand]int{
	wsFetch: 0,
	wsOpen:  2,
}

var errUnknownCommand = fmt.Errorf("%w: unknown command", ErrBadParams)

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row must be an int", ErrBadParams)
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: col must be an int", ErrBadParams)
	}
	return row, col, nil
}

func (g GameHandler) execute(r *http.Request, id, line string) (*mines.Game, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, errUnknownCommand
	}
	cmd := wsCommand(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return nil, errUnknownCommand
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf("%w: invalid number of arguments", ErrBadParams)
	}

	switch cmd {
	case wsOpen:
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return nil, err
		}
		return g.service.Move(r.Context(), id, row, col)
	default:
		return g.service.Fetch(r.Context(), id)
	}
}

// Connect plays a game over a websocket. Each line of a text message is one
// command and gets one reply. The socket is closed once the game is over.
func (g GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	game, err := g.service.Fetch(r.Context(), id)
	if err != nil {
		sendError(w, g.logger, err, http.StatusNotFound)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	c.SetReadLimit(wsReadLimit)

	logger := g.logger.With(slog.String("game_id", id))
	if err := c.WriteJSON(NewGameDTO(game)); err != nil {
		logger.Error("unable to write json", slog.Any("error", err))
		return
	}
	completed := game.Completed()

	for !completed {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			logger.Debug("ws command", slog.String("command", line))

			var reply any
			next, err := g.execute(r, id, strings.TrimSpace(line))
			switch {
			case err == nil:
				reply = NewGameDTO(next)
				completed = next.Completed()
			case statusOf(err, http.StatusNotFound) == http.StatusInternalServerError:
				logger.Error("unable to process command", slog.Any("error", err))
				reply = wrapError(errInternal)
			default:
				reply = wrapError(err)
				completed = errors.Is(err, mines.ErrGameNotFound)
			}

			if err := c.WriteJSON(reply); err != nil {
				logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			if completed {
				break
			}
		}
	}

	err = c.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
	)
	if err != nil {
		logger.Debug("unable to send close message", slog.Any("error", err))
	}
}
