// Package publisher ships computed statistics to Kafka. Delivery is
// fire-and-forget: the async writer accepts the message and the request moves
// on; delivery failures are logged by the completion callback and dropped.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	TopicTeamStats   = "statistics.teams.out"
	TopicPlayerStats = "statistics.players.out"
	TopicTopTeams    = "statistics.top-teams.out"
	TopicTopScorers  = "statistics.top-scores.out"
)

var messageHeaders = []kafka.Header{
	{Key: "source", Value: []byte("stats-api")},
	{Key: "version", Value: []byte("1.0")},
	{Key: "content-type", Value: []byte("application/json")},
}

// KafkaPublisher writes stat payloads through a shared async kafka.Writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafka builds a publisher over the given brokers. The writer is async, so
// WriteMessages returns as soon as the message is queued; the Completion hook
// reports the eventual outcome.
func NewKafka(brokers []string, logger zerolog.Logger) *KafkaPublisher {
	l := logger.With().Str("module", "publisher").Str("component", "kafka").Logger()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	w.Completion = func(messages []kafka.Message, err error) {
		if err != nil {
			l.Error().Err(err).Int("count", len(messages)).Msg("kafka delivery failed, messages dropped")
			return
		}
		for _, m := range messages {
			l.Debug().Str("topic", m.Topic).Str("key", string(m.Key)).Msg("stat event delivered")
		}
	}
	return &KafkaPublisher{writer: w, log: l}
}

// Close flushes pending async messages and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) PublishTeamStats(ctx context.Context, stat model.TeamStat) {
	p.send(ctx, TopicTeamStats, statKey(stat.TeamID, stat.Year), stat)
}

func (p *KafkaPublisher) PublishPlayerStats(ctx context.Context, stat model.PlayerStat) {
	p.send(ctx, TopicPlayerStats, statKey(stat.PlayerID, stat.Year), stat)
}

func (p *KafkaPublisher) PublishTopTeams(ctx context.Context, table []model.TeamStat, year, limit *int) {
	p.send(ctx, TopicTopTeams, topTeamsKey(year, limit), table)
}

func (p *KafkaPublisher) PublishTopScorers(ctx context.Context, rows []model.TopScorerEntry, teamID *int64, year, limit *int) {
	p.send(ctx, TopicTopScorers, topScorersKey(teamID, year, limit), rows)
}

// Message keys identify the query, not the payload, so one query shape always
// lands on the same partition. Absent parameters render empty, keeping keys
// parseable with a fixed field layout.

func statKey(id int64, year *int) string {
	return fmt.Sprintf("id=%d;year=%s", id, optInt(year))
}

func topTeamsKey(year, limit *int) string {
	return fmt.Sprintf("year=%s;limit=%s", optInt(year), optInt(limit))
}

func topScorersKey(teamID *int64, year, limit *int) string {
	return fmt.Sprintf("teamId=%s;year=%s;limit=%s", optInt64(teamID), optInt(year), optInt(limit))
}

func (p *KafkaPublisher) send(ctx context.Context, topic, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("stat payload marshal failed")
		return
	}
	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   body,
		Headers: messageHeaders,
		Time:    time.Now(),
	}
	// Async writer: this only queues. An error here means the queue itself
	// rejected the message (e.g. writer closed), which we log and swallow.
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("stat event enqueue failed")
	}
}

// optInt renders an optional number; absent values render as an empty
// string, so "all time" keys look like "id=7;year=".
func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
