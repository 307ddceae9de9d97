package impact

import "fmt"

// ValidationCode identifies the input problem a ValidationError reports.
type ValidationCode string

const (
	MissingDateColumn   ValidationCode = "missing_date_column"
	MissingTargetColumn ValidationCode = "missing_target_column"
	NonNumericTarget    ValidationCode = "non_numeric_target"
	DuplicateTimestamp  ValidationCode = "duplicate_timestamp"
	NonUniformFrequency ValidationCode = "non_uniform_frequency"
	WindowOutOfRange    ValidationCode = "window_out_of_range"
	EmptyPreWindow      ValidationCode = "empty_pre_window"
	EmptyPostWindow     ValidationCode = "empty_post_window"
	InvalidConfig       ValidationCode = "invalid_config"
)

// ValidationError reports malformed caller input. Always recoverable by
// fixing the input table or the analysis configuration.
type ValidationError struct {
	Code   ValidationCode
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("impact: invalid input (%s): %s", e.Code, e.Detail)
}
