package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPetRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewPetRepository(pool)
	assert.NotNil(t, repo)
}
