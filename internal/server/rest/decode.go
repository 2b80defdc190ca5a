package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// decodeJSON reads one JSON value from the body into v. Oversized bodies
// keep their *http.MaxBytesError; anything else unparsable is a validation error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty request body", common.ErrorValidation)
		default:
			return fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
		}
	}
	return nil
}
