package bounce

import "errors"

var (
	// ErrNotNumber indicates that an input could not be read as a finite number.
	ErrNotNumber = errors.New("bounce: not a number")

	// ErrHeight indicates a drop height that is not strictly positive.
	ErrHeight = errors.New("bounce: height must be greater than 0")

	// ErrHeightMin indicates a threshold outside (0, height).
	ErrHeightMin = errors.New("bounce: height_min must be greater than 0 and less than height")

	// ErrEta indicates a bounce efficiency outside (0, 1).
	ErrEta = errors.New("bounce: eta must be greater than 0 and less than 1")

	// ErrGravity indicates a gravitational acceleration that is not strictly positive.
	ErrGravity = errors.New("bounce: gravity must be greater than 0")
)
