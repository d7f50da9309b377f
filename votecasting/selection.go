package votecasting

import (
	"fmt"

	"github.com/takakv/votecast/model"
)

// validateSelections checks that boldS is non-empty and strictly increasing
// from 1 up, which also rules out duplicates.
func validateSelections(boldS []int) error {
	if len(boldS) == 0 {
		return fmt.Errorf("%w: there needs to be at least one selection", model.ErrInvalidInput)
	}
	for i, si := range boldS {
		if si < 1 {
			return fmt.Errorf("%w: selections must be strictly positive", model.ErrInvalidInput)
		}
		if i > 0 && si <= boldS[i-1] {
			return fmt.Errorf("%w: selections must be distinct and ordered", model.ErrInvalidInput)
		}
	}
	return nil
}
