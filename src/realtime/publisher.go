package realtime

import (
	"context"
	"encoding/json"
	"log"
	"travelhub/src/config"
	"travelhub/src/types"

	"github.com/pusher/pusher-http-go/v5"
	"github.com/redis/go-redis/v9"
)

// Topic fans a payload out to every API instance.
type Topic interface {
	Publish(ctx context.Context, payload []byte) error
}

// Publisher sends broadcast messages. With redis configured the message
// goes through the pub/sub channel so every API instance's hub sees it.
// Without redis an SNS topic may take that role. Otherwise it is delivered
// to the local hub directly.
type Publisher struct {
	hub           *Hub
	rdb           *redis.Client
	channel       string
	topic         Topic
	pusher        *pusher.Client
	pusherChannel string
}

func NewPublisher(hub *Hub, rdb *redis.Client, pc *pusher.Client, cfg config.RealtimeConfig) *Publisher {
	return &Publisher{
		hub:           hub,
		rdb:           rdb,
		channel:       cfg.Channel,
		pusher:        pc,
		pusherChannel: cfg.PusherChannel,
	}
}

// WithTopic sets the fan-out topic used when redis is absent.
func (p *Publisher) WithTopic(t Topic) *Publisher {
	p.topic = t
	return p
}

func (p *Publisher) Publish(ctx context.Context, msgType string, data any) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(types.RealtimeMessage{Type: msgType, Data: data})
	if err != nil {
		return err
	}
	if p.pusher != nil && p.pusherChannel != "" {
		go func() {
			if err := p.pusher.Trigger(p.pusherChannel, msgType, data); err != nil {
				log.Printf("[pusher] Error triggering %s: %s\n", msgType, err.Error())
			}
		}()
	}
	if p.rdb != nil {
		return p.rdb.Publish(ctx, p.channel, payload).Err()
	}
	if p.topic != nil {
		return p.topic.Publish(ctx, payload)
	}
	if p.hub != nil {
		p.hub.Broadcast(payload)
	}
	return nil
}

// SubscribeRedis forwards every payload on channel to the hub until ctx ends.
func (h *Hub) SubscribeRedis(ctx context.Context, rdb *redis.Client, channel string) {
	pubsub := rdb.Subscribe(ctx, channel)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.Broadcast([]byte(msg.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()
}
