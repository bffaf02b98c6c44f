package model

// ClientPlayer is the seat information exposed to clients. Engine seats use
// an id prefixed with "engine:".
type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}
