package crypto

import "golang.org/x/crypto/bcrypt"

// SeedCost is the fixed bcrypt work factor used for seeded accounts.
const SeedCost = bcrypt.DefaultCost

// HashPassword hashes plaintext using bcrypt at SeedCost.
func HashPassword(plain string) ([]byte, error) {
	return HashPasswordCost(plain, SeedCost)
}

// HashPasswordCost hashes plaintext using bcrypt at the given cost.
func HashPasswordCost(plain string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), cost)
}

// ComparePassword compares plaintext to hashed secret.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
