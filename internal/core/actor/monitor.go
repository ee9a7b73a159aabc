package actor

import (
	"fmt"
	"time"

	"pod2mqtt/internal/config"
	"pod2mqtt/internal/core/domain"
	"pod2mqtt/internal/core/events"
	. "pod2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// MonitorActor drives the poll loop: on every tick it asks the device actor
// for a fresh snapshot and projects it into sensor update events. A failed
// poll publishes nothing, so consumers keep the last known values.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	deviceActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream

	logger *zap.Logger
}

type monitorTick struct {
}

func NewMonitorActor(config *config.Config, deviceActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:      config,
		deviceActor: deviceActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_MONITOR, logger),
		eventStream: eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started")

		if state.config.Device.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(time.Duration(state.config.Device.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		}

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.GetDeviceInfoRequest{}, 1*time.Second), func(err error) any {
			return domain.GetDeviceInfoResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingInfoReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR,
			Healthy: true,
			State:   "idle",
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.PollDeviceRequest{}, 20*time.Second), func(err error) any {
			return domain.PollDeviceResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})

		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.Device.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		state.behavior.BecomeStacked(state.WaitingPollReceive)
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingPollReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.PollDeviceResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waiting PollDeviceResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waiting PollDeviceResponse")
		if !msg.Snapshot.IsEmpty() {
			evs := events.SnapshotToUpdateEvents(msg.Snapshot)
			for _, ev := range evs {
				state.eventStream.Publish(ev)
			}
		}

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDeviceInfoResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waitingInfo GetDeviceInfoResponse", zap.Error(msg.GetResponseError()))
			state.behavior.Become(state.DefaultReceive)
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waitingInfo GetDeviceInfoResponse",
			zap.String("host", msg.Info.Host), zap.Uint("port", msg.Info.Port))
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waitingInfo: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}
