package domain

import (
	"github.com/asynkron/protoactor-go/actor"
)

type ActorRef actor.PID

// ActorRequestMixIn lets a request carry an explicit reply target, so a
// message can be forwarded through an intermediary (e.g. the master) and
// still be answered to the original requester.
type ActorRequestMixIn struct {
	ReplyToRef *ActorRef
}

type ActorRequest interface {
	ReplyTo() *ActorRef
}

func (r ActorRequestMixIn) ReplyTo() *ActorRef {
	return r.ReplyToRef
}

type ActorResponseMixIn struct {
	ResponseError error
}

func (r ActorResponseMixIn) GetResponseError() error {
	return r.ResponseError
}

func (r ActorResponseMixIn) HasResponseError() bool {
	return r.ResponseError != nil
}

type ActorResponse interface {
	GetResponseError() error
	HasResponseError() bool
}
