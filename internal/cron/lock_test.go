package cron_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/frahmantamala/airline-admin/internal/cron"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if m.setErr != nil {
		return false, m.setErr
	}
	if _, exists := m.values[key]; exists {
		return false, nil
	}
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return true, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

var _ = Describe("RedisLock", func() {
	var (
		ctx   context.Context
		store *memoryStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemoryStore()
	})

	It("validates its arguments", func() {
		_, err := cron.NewRedisLock(nil, "key", time.Minute)
		Expect(err).To(HaveOccurred())

		_, err = cron.NewRedisLock(store, "", time.Minute)
		Expect(err).To(HaveOccurred())
	})

	It("defaults the ttl", func() {
		lock, err := cron.NewRedisLock(store, "cron", 0)
		Expect(err).NotTo(HaveOccurred())

		acquired, err := lock.Acquire(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(acquired).To(BeTrue())
		Expect(store.ttls["cron"]).To(Equal(25 * time.Hour))
	})

	It("is exclusive between instances", func() {
		first, _ := cron.NewRedisLock(store, "cron", time.Minute)
		second, _ := cron.NewRedisLock(store, "cron", time.Minute)

		Expect(first.Acquire(ctx)).To(BeTrue())
		Expect(second.Acquire(ctx)).To(BeFalse())

		Expect(first.Release(ctx)).To(Succeed())
		Expect(second.Acquire(ctx)).To(BeTrue())
	})

	It("does not release a lock owned by someone else", func() {
		first, _ := cron.NewRedisLock(store, "cron", time.Minute)
		Expect(first.Acquire(ctx)).To(BeTrue())

		store.values["cron"] = "someone-else"
		Expect(first.Release(ctx)).To(Succeed())
		Expect(store.values).To(HaveKeyWithValue("cron", "someone-else"))
	})

	It("treats an expired key as released", func() {
		lock, _ := cron.NewRedisLock(store, "cron", time.Minute)
		Expect(lock.Acquire(ctx)).To(BeTrue())

		delete(store.values, "cron")
		Expect(lock.Release(ctx)).To(Succeed())
	})

	It("wraps store errors", func() {
		store.setErr = errors.New("connection refused")
		lock, _ := cron.NewRedisLock(store, "cron", time.Minute)

		_, err := lock.Acquire(ctx)
		Expect(errors.Is(err, store.setErr)).To(BeTrue())
	})
})

var _ = Describe("LocalLock", func() {
	It("allows one holder at a time", func() {
		lock := cron.NewLocalLock()
		ctx := context.Background()

		Expect(lock.Acquire(ctx)).To(BeTrue())
		Expect(lock.Acquire(ctx)).To(BeFalse())
		Expect(lock.Release(ctx)).To(Succeed())
		Expect(lock.Acquire(ctx)).To(BeTrue())
	})
})
