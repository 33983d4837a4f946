package cleaning

import "errors"

var ErrScheduleNotFound = errors.New("cleaning schedule not found")
