package entity

// Session is the stored form of one browser's game.
type Session struct {
	ID      string  `json:"id"`
	History []Board `json:"history"`
	Step    int     `json:"step"`
}
