package users

// IDLength is the length of generated user identifiers.
const IDLength = 64

// User is an account row. ID is assigned at registration and never changes;
// PasswordHash holds the bcrypt output of the derived digest, never the raw
// password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Salt         string
}
