package set_host_status

// SetHostStatusRequest HTTP request model
// Указатель, чтобы отличать отсутствующее поле от false
type SetHostStatusRequest struct {
	Online *bool `json:"online"`
}

// HostStatusResponse HTTP response model
type HostStatusResponse struct {
	Online  bool `json:"online"`
	Applied bool `json:"applied"`
}
