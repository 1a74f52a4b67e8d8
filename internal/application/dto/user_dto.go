package dto

import "encoding/json"

// UserAccountDTO cuerpo que devuelve el servicio de usuarios en
// GET /user/userAccount/getByToken/{token} (dentro de ResponseDTO.Content).
// Ese servicio usa nombres camelCase.
type UserAccountDTO struct {
	ID         json.Number `json:"id"`
	UserName   string      `json:"userName"`
	BranchCode string      `json:"branchCode"`
	UserRoleID json.Number `json:"userRoleId"`
	Status     string      `json:"status"`
}
