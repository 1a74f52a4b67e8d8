package entity

// UserAccount es la vista del usuario que devuelve el servicio de usuarios para un token.
// BranchCode es la clave de partición multi-sucursal de todos los datos.
type UserAccount struct {
	ID         string
	UserName   string
	BranchCode string
	RoleID     string
	Status     string
}

// IsActive indica si la cuenta puede operar.
func (u *UserAccount) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}
