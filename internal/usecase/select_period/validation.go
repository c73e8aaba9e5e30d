package select_period

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: space_id must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	if req.End.Before(req.Start) {
		return fmt.Errorf("%w: end date must not precede start date", ErrInvalidInput)
	}

	return nil
}
