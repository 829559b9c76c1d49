package request

// RegisterRequest is the request body for registering a player account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterNameRequest is the request body for claiming a display name
type RegisterNameRequest struct {
	Name string `json:"name"`
}

// MatchRequest is the request body for requesting a match
type MatchRequest struct {
	Opponent string `json:"opponent"`
}

// MoveRequest is the request body for placing a piece
type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
