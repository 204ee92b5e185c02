package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modfence/modfence/pkg/domain"
)

func newTestCache(t *testing.T) (*RedisResultCache, redismock.ClientMock) {
	t.Helper()
	client, clientMock := redismock.NewClientMock()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewRedisResultCache(client, time.Minute, logger), clientMock
}

func TestKey(t *testing.T) {
	textKey := Key(domain.KindText, []byte("hello"))
	imageKey := Key(domain.KindImage, []byte("hello"))

	assert.Contains(t, textKey, "modfence:classification:text:")
	// The same content under a different kind never collides.
	assert.NotEqual(t, textKey, imageKey)
	// Identical inputs hash identically.
	assert.Equal(t, textKey, Key(domain.KindText, []byte("hello")))
}

func TestRedisResultCache_MissOnNil(t *testing.T) {
	cache, clientMock := newTestCache(t)
	clientMock.ExpectGet(Key(domain.KindText, []byte("hello"))).RedisNil()

	result, ok := cache.Get(context.Background(), domain.KindText, []byte("hello"))

	assert.False(t, ok)
	assert.Nil(t, result)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestRedisResultCache_SetThenGet(t *testing.T) {
	cache, clientMock := newTestCache(t)
	content := []byte("some message")
	result := &domain.AnalysisResult{
		Categories: []domain.CategoryAnalysis{{Category: "Violence", Severity: 4}},
	}
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	key := Key(domain.KindText, content)
	clientMock.ExpectSet(key, raw, time.Minute).SetVal("OK")
	clientMock.ExpectGet(key).SetVal(string(raw))

	cache.Set(context.Background(), domain.KindText, content, result)
	got, ok := cache.Get(context.Background(), domain.KindText, content)

	require.True(t, ok)
	assert.Equal(t, result, got)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestRedisResultCache_CorruptEntryIsMiss(t *testing.T) {
	cache, clientMock := newTestCache(t)
	clientMock.ExpectGet(Key(domain.KindImage, []byte("img"))).SetVal("not json")

	result, ok := cache.Get(context.Background(), domain.KindImage, []byte("img"))

	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestRedisResultCache_ReadFailureIsMiss(t *testing.T) {
	cache, clientMock := newTestCache(t)
	clientMock.ExpectGet(Key(domain.KindText, []byte("x"))).SetErr(assert.AnError)

	_, ok := cache.Get(context.Background(), domain.KindText, []byte("x"))

	assert.False(t, ok)
}
