package drive

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrDriveAPI = errors.New("drive api")

// ErrorResponse describes the JSON envelope that the Drive API responds
// with when an API call fails.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Domain  string `json:"domain"`
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

func ToErrorFromResponse(resp *resty.Response) (*ErrorResponse, error) {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil {
		return nil, errors.Join(ErrDriveAPI, fmt.Errorf("(HTTP Status: %d)- unable to parse json error response: %s", resp.StatusCode(), err))
	}

	reason := ""
	if len(errorResponse.Error.Errors) != 0 {
		reason = errorResponse.Error.Errors[0].Reason
	}

	return &errorResponse, errors.Join(ErrDriveAPI, fmt.Errorf("(HTTP Status: %d)- %s: %s", resp.StatusCode(), reason, errorResponse.Error.Message))
}
