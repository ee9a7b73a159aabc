package actor

import (
	"errors"
	"fmt"
	"time"

	"pod2mqtt/internal/config"
	"pod2mqtt/internal/core/domain"
	"pod2mqtt/internal/util/actorutil"
	"pod2mqtt/pkg/eightsleep"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	HADISCOVERY_ACTOR_ID = "hadiscovery"
)

type HADiscoveryActor struct {
	config             *config.Config
	behavior           actor.Behavior
	stash              *actorutil.Stash
	deviceActor        *actor.PID
	mqttActor          *actor.PID
	deviceActorHealthy bool
	mqttActorHealthy   bool
	healthyRecv        int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, deviceActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:      config,
		deviceActor: deviceActor,
		mqttActor:   mqttActor,
		behavior:    actor.NewBehavior(),
		stash:       &actorutil.Stash{},
		logger:      actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check Device and MQTT actor healthy
		state.healthyRecv = 0
		state.deviceActorHealthy = false
		state.mqttActorHealthy = false
		// Device Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_DEVICE,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_DEVICE:
				state.deviceActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.deviceActorHealthy && state.mqttActorHealthy {
				// Ask Device GetDeviceInfoRequest
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.GetDeviceInfoRequest{}, 2*time.Second), func(err error) any {
					return domain.GetDeviceInfoResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingInfoReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Device Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDeviceInfoResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@info: GetDeviceInfoResponse", zap.Any("response", msg))

		var sensors []domain.GenericSensor

		bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
		bridgeSensors := domain.BridgeSensors(bridgeDevice)
		sensors = append(sensors, bridgeSensors...)

		for _, side := range eightsleep.Sides() {
			sideDevice := domain.SideDevice(side, msg.Info)
			sideDevice.ViaDevice = bridgeDevice.Id
			sideSensors := domain.SideSensors(sideDevice, side)
			for i := range sideSensors {
				if i > 0 {
					sideSensors[i].Device = domain.IdDevice(sideDevice)
				}
				sensors = append(sensors, sideSensors[i])
			}
		}

		ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
			Sensors: sensors,
		})
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@info: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}
