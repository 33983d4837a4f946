package room

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeAttempts = 64
)

// generateUniqueCode draws random codes until one is free. Collisions are
// retried locally and never surfaced; the attempt cap guards against a
// storage layer that reports every code as taken.
func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := generateCode(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func generateCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(codeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}
