package ws

// StreamRequest is the first and only message a client sends on a stream.
type StreamRequest struct {
	Src  string   `json:"src"`
	Dsts []string `json:"dsts"`
}

// DoneMsg is the last frame of a successful stream.
type DoneMsg struct {
	Done bool `json:"done"`
}

// ErrorMsg ends a stream whose search failed. Code matches the REST error
// codes.
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
