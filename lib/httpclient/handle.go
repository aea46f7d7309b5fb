package httpclient

import (
	"context"

	"webprobe/lib/element"
)

type handle struct {
	id     string
	req    *element.Request
	cancel context.CancelFunc
	done   chan struct{}

	res *element.Response
	err error
}

func (h *handle) finish(res *element.Response, err error, onResponse element.ResponseFunc) {
	h.res = res
	h.err = err
	if onResponse != nil {
		onResponse(res, err)
	}
	close(h.done)
}

func (h *handle) ID() string {
	return h.id
}

func (h *handle) Request() *element.Request {
	return h.req
}

func (h *handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the request has finished and its callback has returned.
func (h *handle) Wait() (*element.Response, error) {
	<-h.done
	return h.res, h.err
}

func (h *handle) Cancel() {
	h.cancel()
}
