package professionals

// Professional directory record for a barber
type Professional struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Active   bool     `json:"active"`
	Services []string `json:"services,omitempty"`
}

// ErrorResponse error payload from the directory service
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
