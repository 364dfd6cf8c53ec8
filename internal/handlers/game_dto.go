package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-api/internal/mines"
)

const maxBodyBytes = 1 << 16

var ErrBadParams = fmt.Errorf("invalid request parameters")

type NewGameParams struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mines_count,required"`
}

type TurnDTO struct {
	GameID string `schema:"game_id,required"`
	Row    int    `schema:"row,required"`
	Col    int    `schema:"col,required"`
}

// jsonToValues flattens a JSON object of scalars into form values so that
// JSON and form requests go through the same schema decoder.
func jsonToValues(r io.Reader) (map[string][]string, error) {
	var obj map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	values := make(map[string][]string, len(obj))
	for k, v := range obj {
		switch value := v.(type) {
		case json.Number:
			values[k] = []string{value.String()}
		case string:
			values[k] = []string{value}
		case bool:
			values[k] = []string{strconv.FormatBool(value)}
		case nil:
		default:
			return nil, fmt.Errorf("field %q must be a scalar", k)
		}
	}
	return values, nil
}

func requestValues(r *http.Request) (map[string][]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return jsonToValues(io.LimitReader(r.Body, maxBodyBytes))
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.Form, nil
}

func decodeParams[T any](r *http.Request) (T, error) {
	var dto T
	src, err := requestValues(r)
	if err != nil {
		return dto, fmt.Errorf("%w: %w", ErrBadParams, err)
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return dto, fmt.Errorf("%w: %w", ErrBadParams, err)
	}
	return dto, nil
}

type GameDTO struct {
	GameID    string         `json:"game_id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	MineCount int            `json:"mines_count"`
	Completed bool           `json:"completed"`
	State     string         `json:"state"`
	Field     [][]mines.Cell `json:"field"`
}

func NewGameDTO(g *mines.Game) *GameDTO {
	return &GameDTO{
		GameID:    g.ID,
		Width:     g.Width,
		Height:    g.Height,
		MineCount: g.MineCount,
		Completed: g.Completed(),
		State:     g.State.String(),
		Field:     g.Grid.Rows(g.Width),
	}
}
