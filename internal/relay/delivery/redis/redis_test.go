package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
)

type mockRedis struct {
	mock.Mock
	patterns []string
}

func (m *mockRedis) Publish(ctx context.Context, channel string, message any) (int64, error) {
	args := m.Called(ctx, channel, message)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRedis) PSubscribe(ctx context.Context, patterns ...string) *goredis.PubSub {
	m.patterns = append(m.patterns, patterns...)
	return nil
}

func (m *mockRedis) Ping(ctx context.Context) (time.Duration, error) {
	return 0, nil
}

func (m *mockRedis) Close() error {
	return nil
}

type mockUseCase struct {
	relay.UseCase
	mock.Mock
}

func (m *mockUseCase) ProcessMessage(ctx context.Context, input relay.ProcessMessageInput) error {
	return m.Called(ctx, input).Error(0)
}

func TestPublishWritesUserChannel(t *testing.T) {
	r := &mockRedis{}
	var published []byte
	r.On("Publish", mock.Anything, "user_noti:42", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).([]byte) }).
		Return(int64(1), nil)

	p := NewPublisher(r, log.NewNop())
	n, err := p.Publish(context.Background(), "42", relay.EventNotification, map[string]string{"content": "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var msg relay.RedisMessage
	require.NoError(t, json.Unmarshal(published, &msg))
	assert.Equal(t, relay.EventNotification, msg.Type)
	assert.JSONEq(t, `{"content":"hi"}`, string(msg.Payload))
	r.AssertExpectations(t)
}

func TestPublishValidatesInput(t *testing.T) {
	p := NewPublisher(&mockRedis{}, log.NewNop())

	_, err := p.Publish(context.Background(), "", relay.EventNotification, nil)
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = p.Publish(context.Background(), "42", "", nil)
	assert.ErrorIs(t, err, relay.ErrInvalidMessage)
}

func TestPublishPropagatesRedisError(t *testing.T) {
	r := &mockRedis{}
	boom := errors.New("connection refused")
	r.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), boom)

	_, err := NewPublisher(r, log.NewNop()).Publish(context.Background(), "42", "notification", nil)
	assert.ErrorIs(t, err, boom)
}

func TestHandleMessageForwardsToUseCase(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ProcessMessage", mock.Anything, relay.ProcessMessageInput{
		Channel: "user_noti:42",
		Payload: []byte(`{"type":"notification"}`),
	}).Return(relay.ErrInvalidMessage).Once()

	s := New(&mockRedis{}, uc, log.NewNop()).(*subscriber)
	s.handleMessage(context.Background(), "user_noti:42", []byte(`{"type":"notification"}`))

	uc.AssertExpectations(t)
}

// fakePubSub stands in for *goredis.PubSub.
type fakePubSub struct {
	mu         sync.Mutex
	ch         chan *goredis.Message
	receiveErr error
	closed     bool
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{ch: make(chan *goredis.Message, 4)}
}

func (f *fakePubSub) Receive(context.Context) (interface{}, error) {
	if f.receiveErr != nil {
		return nil, f.receiveErr
	}
	return &goredis.Subscription{Kind: "psubscribe", Channel: relay.ChannelPattern, Count: 1}, nil
}

func (f *fakePubSub) Channel(...goredis.ChannelOption) <-chan *goredis.Message {
	return f.ch
}

func (f *fakePubSub) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakePubSub) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func newTestSubscriber(uc relay.UseCase, ps *fakePubSub) (*subscriber, *[]string) {
	s := New(&mockRedis{}, uc, log.NewNop()).(*subscriber)
	var patterns []string
	s.subscribe = func(_ context.Context, p ...string) pubSub {
		patterns = append(patterns, p...)
		return ps
	}
	return s, &patterns
}

func TestSubscriberDefaultsToPatternSubscribe(t *testing.T) {
	r := &mockRedis{}
	s := New(r, &mockUseCase{}, log.NewNop()).(*subscriber)

	s.subscribe(context.Background(), relay.ChannelPattern)
	assert.Equal(t, []string{relay.ChannelPattern}, r.patterns)
}

func TestSubscriberStartDeliversThenShutsDown(t *testing.T) {
	delivered := make(chan relay.ProcessMessageInput, 1)
	uc := &mockUseCase{}
	uc.On("ProcessMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered <- args.Get(1).(relay.ProcessMessageInput) }).
		Return(nil)

	ps := newFakePubSub()
	s, patterns := newTestSubscriber(uc, ps)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []string{relay.ChannelPattern}, *patterns)

	ps.ch <- &goredis.Message{Channel: "user_noti:42", Pattern: relay.ChannelPattern, Payload: `{"type":"notification","payload":{"content":"hi"}}`}

	select {
	case in := <-delivered:
		assert.Equal(t, "user_noti:42", in.Channel)
		assert.JSONEq(t, `{"type":"notification","payload":{"content":"hi"}}`, string(in.Payload))
	case <-time.After(3 * time.Second):
		t.Fatal("message was not forwarded")
	}

	require.NoError(t, s.Shutdown(context.Background()))
	assert.True(t, ps.isClosed())
	uc.AssertNumberOfCalls(t, "ProcessMessage", 1)
}

func TestSubscriberStopsWhenChannelCloses(t *testing.T) {
	ps := newFakePubSub()
	s, _ := newTestSubscriber(&mockUseCase{}, ps)

	require.NoError(t, s.Start(context.Background()))
	close(ps.ch)

	stopped := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("listen did not return after the channel closed")
	}
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestSubscriberStartFailsWithoutConfirmation(t *testing.T) {
	ps := newFakePubSub()
	ps.receiveErr = errors.New("NOAUTH")
	s, _ := newTestSubscriber(&mockUseCase{}, ps)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOAUTH")
	assert.True(t, ps.isClosed())
}
