package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

var errEmptyBody = errors.New("request body is empty")

// BindNestedOrFlat decodes the JSON body into obj. A body of the form
// {"<key>": {...}} is unwrapped first; anything else is decoded as is.
// Admin clients send both shapes.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	// keep the body readable for later middleware
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if nested, ok := envelope[key]; ok && string(nested) != "null" {
			body = nested
		}
	}
	return json.Unmarshal(body, obj)
}
