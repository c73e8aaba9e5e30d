package list_bookable_dates

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: space_id must be positive", ErrInvalidInput)
	}

	return nil
}
