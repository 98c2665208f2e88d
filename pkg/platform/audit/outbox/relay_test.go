package outbox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"credo-consent/internal/platform/kafka/producer"
	"credo-consent/pkg/platform/audit/outbox/mocks"
	"credo-consent/pkg/platform/audit/store/postgres"
	"credo-consent/pkg/platform/circuit"
)

//go:generate mockgen -source=relay.go -destination=mocks/mocks.go -package=mocks Source,Publisher

type RelaySuite struct {
	suite.Suite
	ctx       context.Context
	source    *mocks.MockSource
	publisher *mocks.MockPublisher
	relay     *Relay
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.source = mocks.NewMockSource(ctrl)
	s.publisher = mocks.NewMockPublisher(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.relay = New(s.source, s.publisher, "consent.audit", logger,
		WithBatchSize(10),
		WithBreaker(circuit.New("audit-relay", circuit.WithFailureThreshold(1), circuit.WithCooldown(time.Hour))),
	)
}

func entry(action string) postgres.Entry {
	return postgres.Entry{
		ID:            uuid.New(),
		AggregateType: "account",
		AggregateID:   "acct-7",
		EventType:     action,
		Payload:       []byte(`{"action":"` + action + `"}`),
	}
}

func (s *RelaySuite) TestPublishesBatchAndMarksEntries() {
	first, second := entry("consent_granted"), entry("login_confirmed")
	s.source.EXPECT().FetchPending(gomock.Any(), 10).Return([]postgres.Entry{first, second}, nil)
	gomock.InOrder(
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg producer.Message) error {
				s.Equal("consent.audit", msg.Topic)
				s.Equal("acct-7", string(msg.Key))
				s.Equal("consent_granted", msg.Headers["event_type"])
				return nil
			}),
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
	)
	s.source.EXPECT().MarkPublished(gomock.Any(), []uuid.UUID{first.ID, second.ID}).Return(nil)

	n, err := s.relay.RelayOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *RelaySuite) TestStopsAtFirstFailureAndOpensCircuit() {
	first, second := entry("consent_granted"), entry("consent_denied")
	brokerDown := errors.New("broker down")
	s.source.EXPECT().FetchPending(gomock.Any(), 10).Return([]postgres.Entry{first, second}, nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(brokerDown)
	s.source.EXPECT().MarkPublished(gomock.Any(), []uuid.UUID{first.ID}).Return(nil)

	n, err := s.relay.RelayOnce(s.ctx)
	s.ErrorIs(err, brokerDown)
	s.Equal(1, n)

	// open circuit skips the next cycle without touching the outbox
	n, err = s.relay.RelayOnce(s.ctx)
	s.NoError(err)
	s.Zero(n)
}

func (s *RelaySuite) TestFetchFailure() {
	s.source.EXPECT().FetchPending(gomock.Any(), 10).Return(nil, errors.New("db down"))

	_, err := s.relay.RelayOnce(s.ctx)
	s.Error(err)
}

func (s *RelaySuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.ErrorIs(s.relay.Run(ctx), context.Canceled)
}
