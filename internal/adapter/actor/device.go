package actor

import (
	"context"
	"fmt"
	"time"

	"pod2mqtt/internal/core/domain"
	"pod2mqtt/internal/util/actorutil"
	"pod2mqtt/pkg/eightsleep"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

// DeviceActor owns the pod status client. Polls run as background tasks so
// the mailbox stays responsive; requests arriving mid-poll are stashed.
type DeviceActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	reader   eightsleep.StatusReader
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewDeviceActor(reader eightsleep.StatusReader, logger *zap.Logger) *DeviceActor {
	act := &DeviceActor{
		reader:   reader,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_DEVICE, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *DeviceActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *DeviceActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("device@starting started")
		if err := state.reader.Start(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.reader.Stop()
	default:
		state.logger.Debug("device@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DeviceActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("device@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_DEVICE,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDeviceInfoRequest:
		state.logger.Debug("device@default: GetDeviceInfoRequest")
		actorutil.ForRequest(msg).Respond(ctx, domain.GetDeviceInfoResponse{
			Info: state.reader.Info(),
		})
	case domain.GetDeviceStatusRequest:
		state.logger.Debug("device@default: GetDeviceStatusRequest")
		actorutil.ForRequest(msg).Respond(ctx, domain.GetDeviceStatusResponse{
			Snapshot: state.reader.Latest(),
		})
	case domain.PollDeviceRequest:
		state.logger.Debug("device@default: PollDeviceRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.poll),
			mapTaskResult[domain.PollDeviceResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.PollDeviceResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(15 * time.Second).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingDevice)
	case *actor.Stopping:
		state.reader.Stop()
	default:
		state.logger.Debug("device@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *DeviceActor) WaitingDevice(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("device@WaitingDevice backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.reader.Stop()
	default:
		state.logger.Debug("device@WaitingDevice stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *DeviceActor) poll() (*domain.PollDeviceResponse, error) {
	if err := a.reader.Fetch(context.Background()); err != nil {
		// only lifecycle misuse reaches here; network failures are
		// absorbed by the client and leave the last snapshot in place
		logger.Error(err)
		return nil, err
	}
	return &domain.PollDeviceResponse{
		Snapshot: a.reader.Latest(),
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
