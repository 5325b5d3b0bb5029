package schemas

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Cash     string `json:"cash"`
}
