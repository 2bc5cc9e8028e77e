package errors

import (
	"errors"
	"fmt"
)

// upstreamError is implemented by errors that came back from the commerce backend.
type upstreamError interface {
	UpstreamStatus() int
	UpstreamPath() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamPath   string `json:"upstream_path,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var up upstreamError
	if errors.As(err, &up) {
		d.UpstreamStatus = up.UpstreamStatus()
		d.UpstreamPath = up.UpstreamPath()
	}

	return d
}
