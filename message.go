// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lpvm

import "github.com/holiman/uint256"

// Attribute is a key/value pair emitted by a successful call.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BankSend instructs the host to transfer funds from the contract account.
type BankSend struct {
	ToAddress string       `json:"to_address"`
	Denom     string       `json:"denom"`
	Amount    *uint256.Int `json:"amount"`
}

// Response is the result of a successful Instantiate or Execute call.
type Response struct {
	Messages   []BankSend  `json:"messages"`
	Attributes []Attribute `json:"attributes"`

	onCommit []func()
}

// NewResponse returns an empty response.
func NewResponse() *Response {
	return &Response{}
}

// AddAttribute appends an attribute and returns the response.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// AddMessage appends a bank transfer and returns the response.
func (r *Response) AddMessage(msg BankSend) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// Attribute returns the value of the first attribute named [key].
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// OnCommit registers [f] to run once the host has committed the call. Hooks
// of an aborted call never run.
func (r *Response) OnCommit(f func()) *Response {
	r.onCommit = append(r.onCommit, f)
	return r
}

// Committed runs the commit hooks in registration order. Hosts call it after
// the call's writes and bank sends are durable.
func (r *Response) Committed() {
	hooks := r.onCommit
	r.onCommit = nil
	for _, f := range hooks {
		f()
	}
}
