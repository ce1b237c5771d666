package model

// Usuario is the token subject. Password holds the bcrypt hash and is never
// serialized out.
type Usuario struct {
	ID         int64  `db:"id" json:"id"`
	Username   string `db:"username" json:"username"`
	Password   string `db:"password" json:"-"`
	ContactoID *int64 `db:"contacto_id" json:"contacto_id,omitempty"`
}

// UsuarioCreate is the registration payload; the plaintext password is hashed
// before it reaches the repository.
type UsuarioCreate struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ContactoID *int64 `json:"contacto_id,omitempty"`
}
