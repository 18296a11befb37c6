package response

import (
	"time"

	"cinema-pos/internal/data/entity"
)

type AuthResponse struct {
	OperatorID string              `json:"operator_id"`
	Token      string              `json:"token"`
	ExpiresAt  time.Time           `json:"expires_at"`
	Username   string              `json:"username"`
	Role       entity.OperatorRole `json:"role"`
}

func AuthToResponse(operator *entity.Operator, token *entity.AuthToken) AuthResponse {
	resp := AuthResponse{
		OperatorID: operator.ID.String(),
		Username:   operator.Username,
		Role:       operator.Role,
	}

	if token != nil {
		resp.Token = token.Token.String()
		resp.ExpiresAt = token.ExpiresAt
	}

	return resp
}
