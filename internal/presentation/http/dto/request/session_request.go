package request

// OpenSessionRequest carries the token and business issued by the login flow
type OpenSessionRequest struct {
	Token      string `json:"token" binding:"required"`
	BusinessID string `json:"business_id" binding:"required,max=64"`
}
