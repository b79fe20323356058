// Package errs holds the value and lookup errors shared by every layer of the
// fulfillment service.
//
// Each error is a sentinel plus a struct carrying the offending parameter:
//   - ErrValueIsRequired / ValueIsRequiredError: a mandatory field or payload entry is missing
//   - ErrValueIsInvalid / ValueIsInvalidError: a value failed parsing or validation
//   - ErrValueIsOutOfRange / ValueIsOutOfRangeError: a number outside its bounds
//   - ErrObjectNotFound / ObjectNotFoundError: an order, agent or depot id that does not exist
//   - ErrVersionIsInvalid / VersionIsInvalidError: a stored aggregate version that cannot be used
//
// The structs Unwrap to their sentinel, so callers classify with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.JSON(http.StatusNotFound, ...)
//	}
package errs
