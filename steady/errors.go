package steady

import (
	"errors"
	"fmt"
)

// ErrNoTargetItem indicates the plant declares no target item.
var ErrNoTargetItem = errors.New("steady: target item must not be empty")

// RecipeError is returned when a recipe references an undeclared machine.
type RecipeError struct {
	Recipe, Machine string
}

func (e RecipeError) Error() string {
	return fmt.Sprintf("steady: recipe %q references unknown machine %q", e.Recipe, e.Machine)
}
