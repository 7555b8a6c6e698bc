package records

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ixfguard/internal/database"
	"ixfguard/internal/ghostpeer"
)

// Pipeline saves records. Each variant validates with the acting principal,
// then writes inside one transaction; any error leaves storage untouched.
type Pipeline struct {
	resolver *ghostpeer.Resolver
}

func NewPipeline(resolver *ghostpeer.Resolver) *Pipeline {
	return &Pipeline{resolver: resolver}
}

func lookupErr(what string, id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, database.ErrNotFound)
	}
	return fmt.Errorf("load %s %d: %w", what, id, err)
}
