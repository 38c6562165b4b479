package interfaces

// PasswordHasher produces and verifies salted one-way password hashes.
// Verification recomputes the hash from the plaintext; the stored hash is
// never reversed.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}
