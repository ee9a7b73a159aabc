package actor

import (
	"testing"
	"time"

	"pod2mqtt/internal/core/domain"
	"pod2mqtt/internal/util/actorutil"
	"pod2mqtt/pkg/eightsleep"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDeviceInfoDeviceActor(t *testing.T) {

	assert := assert.New(t)

	reader := eightsleep.CreateTestStatusReader()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewDeviceActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDeviceInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceInfoResponse)

	assert.Equal("localhost", resp.Info.Host, "device host")
	assert.Equal(uint(8080), resp.Info.Port, "device port")
	assert.Equal("00000-0000-000-00000", resp.Info.SensorLabel, "sensor label")

	context.Stop(pid)

	as.Shutdown()
}

func TestPollDeviceActor(t *testing.T) {

	assert := assert.New(t)

	reader := eightsleep.CreateTestStatusReader()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewDeviceActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.PollDeviceRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.PollDeviceResponse)

	assert.False(resp.HasResponseError(), "poll response error")
	assert.False(resp.Snapshot.IsEmpty(), "snapshot present")
	assert.Equal(83.0, eightsleep.ResolveNumber(eightsleep.SideLeft, "current_temp_f", resp.Snapshot), "left current temp")
	assert.Equal(true, eightsleep.ResolveBool(eightsleep.SideHub, "water_level", resp.Snapshot), "water level ok")

	// the reader keeps a rolling history, newest first
	result, err = context.RequestFuture(pid, domain.PollDeviceRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp = result.(domain.PollDeviceResponse)
	assert.False(resp.HasResponseError(), "second poll response error")
	assert.Equal(2, len(reader.History()), "history length")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetDeviceStatusBeforeAnyPoll(t *testing.T) {

	assert := assert.New(t)

	reader := eightsleep.CreateTestStatusReader()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewDeviceActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	result, err := context.RequestFuture(pid, domain.GetDeviceStatusRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceStatusResponse)

	assert.False(resp.HasResponseError(), "status response error")
	assert.True(resp.Snapshot.IsEmpty(), "no snapshot before first poll")

	context.Stop(pid)

	as.Shutdown()
}
