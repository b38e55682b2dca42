package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CreateAppointmentRequest is the body of POST /appointments
type CreateAppointmentRequest struct {
	UserID      FlexString `json:"user_id" swaggertype:"string"`
	Date        string     `json:"date"` // "YYYY-MM-DD", "YYYY-MM-DD HH:MM[:SS]" or RFC3339
	Description *string    `json:"description"`
}

// CreateAppointmentResponse is returned after an appointment is stored
type CreateAppointmentResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// FlexString accepts a JSON string or number and keeps its text form.
// null and the number 0 leave it empty so they count as missing.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id must be a string or a number")
	}
	if v, err := n.Float64(); err == nil && v == 0 {
		*f = ""
		return nil
	}
	*f = FlexString(n.String())
	return nil
}
