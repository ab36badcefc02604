package entity

// Session vínculo efímero de una Identity con una instancia de cliente.
// Se serializa tal cual al almacenamiento durable.
type Session struct {
	AccessToken string    `json:"access_token"`
	User        *Identity `json:"user"`
}
