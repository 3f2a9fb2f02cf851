package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed assets/*
var assets embed.FS

const boardWidth = 3

// Cell is one square of the board view.
type Cell struct {
	Index int
	Value string
	Match bool
}

// Move is one entry of the history view.
type Move struct {
	Step    int
	Label   string
	Current bool
}

// Page holds everything the game fragment shows.
type Page struct {
	Status string
	Rows   [][]Cell
	Moves  []Move
}

// NewBoard lays out the snapshot row by row, marking cells of win when given.
func NewBoard(board entity.Board, win *entity.Win) [][]Cell {
	rows := make([][]Cell, 0, entity.BoardSize/boardWidth)

	for start := 0; start < entity.BoardSize; start += boardWidth {
		row := make([]Cell, 0, boardWidth)
		for idx := start; idx < start+boardWidth; idx++ {
			row = append(row, Cell{
				Index: idx,
				Value: board[idx],
				Match: win != nil && win.Contains(idx),
			})
		}
		rows = append(rows, row)
	}

	return rows
}

// NewHistory returns one jump control per snapshot.
func NewHistory(history []entity.Board, current int) []Move {
	moves := make([]Move, 0, len(history))

	for step := range history {
		moves = append(moves, Move{
			Step:    step,
			Label:   moveLabel(step),
			Current: step == current,
		})
	}

	return moves
}

func moveLabel(step int) string {
	if step == 0 {
		return "Go to game start"
	}

	return "Go to move #" + strconv.Itoa(step)
}

func NewPage(game *tictactoe.Game) Page {
	var win *entity.Win
	if found, ok := game.Winner(); ok {
		win = &found
	}

	return Page{
		Status: game.Status(),
		Rows:   NewBoard(game.Current(), win),
		Moves:  NewHistory(game.History(), game.Step()),
	}
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full HTML document.
func (that *Renderer) Page(w io.Writer, page Page) error {
	if err := that.tmpl.ExecuteTemplate(w, "page", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

// Fragment writes only the game markup, for replacing it in place.
func (that *Renderer) Fragment(w io.Writer, page Page) error {
	if err := that.tmpl.ExecuteTemplate(w, "game", page); err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	return nil
}

// Assets are the stylesheet and script, rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(fmt.Errorf("embedded assets missing: %w", err))
	}

	return sub
}
