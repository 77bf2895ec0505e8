package integration

type ConnectIntegrationRequest struct {
	Provider    string `json:"provider" binding:"required,oneof=slack google microsoft asana"`
	Credentials string `json:"credentials" binding:"required,max=4096"`
}

type IntegrationResponse struct {
	ID          string  `json:"id"`
	Provider    string  `json:"provider"`
	Status      string  `json:"status"`
	ConnectedBy string  `json:"connected_by,omitempty"`
	ConnectedAt *string `json:"connected_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
