package service

// PasswordHasher defines the interface for hashing and verifying passwords.
type PasswordHasher interface {
	// Hash returns the hashed form of a plaintext password.
	Hash(password string) (string, error)

	// Check returns an error when the plaintext password does not match the
	// stored hash.
	Check(hashedPassword, password string) error
}
